package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/domain"
	"github.com/vparedes/menuadmin/internal/stub/store"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list menu items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item")
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := s.store.Create(r.Context(), item); err != nil {
		s.logger.Error("create menu item failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create menu item")
		return
	}

	s.hub.Broadcast(backend.ChangeEvent{Type: backend.ChangeInsert, ID: item.ID})
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid patch")
		return
	}

	err := s.store.Patch(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err != nil {
		s.logger.Error("patch menu item failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update menu item")
		return
	}

	s.hub.Broadcast(backend.ChangeEvent{Type: backend.ChangeUpdate, ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err != nil {
		s.logger.Error("delete menu item failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete menu item")
		return
	}

	s.hub.Broadcast(backend.ChangeEvent{Type: backend.ChangeDelete, ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// Seed inserts the demo menu when the table is empty, so a fresh stub has
// something to serve.
func (s *Server) Seed(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, item := range domain.SampleMenu() {
		if err := s.store.Create(ctx, item); err != nil {
			return err
		}
	}
	s.logger.Info("seeded demo menu", "items", 2)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
