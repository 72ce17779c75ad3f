package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vparedes/menuadmin/internal/domain"
)

func (s *Server) handleMenuPage(w http.ResponseWriter, r *http.Request) {
	if !s.ctrl.Guard(r.Context()) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	s.ctrl.Load(r.Context())
	snap := s.ctrl.Snapshot()

	if err := s.renderPage(w,
		map[string]any{
			"Items":   snap.Items,
			"Spinner": snap.Spinner,
			"Editing": snap.Editing,
			"Toasts":  s.toasts.Drain(),
			"Locale":  s.locale,
		},
		"base.html", "pages/menu.html", "partials/item_card.html",
		"partials/edit_modal.html", "partials/toasts.html",
	); err != nil {
		s.logger.Error("render menu page failed", "error", err)
	}
}

func (s *Server) handleEditModal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.ctrl.OpenEditor(id)

	snap := s.ctrl.Snapshot()
	if snap.Editing == nil {
		s.ctrl.CloseEditor()
		http.NotFound(w, r)
		return
	}

	if err := s.renderPartial(w, "partials/edit_modal.html", "edit_modal", snap.Editing); err != nil {
		s.logger.Error("render edit modal failed", "error", err)
	}
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.ctrl.Update(r.Context(), r.PathValue("id"), patchFromForm(r))
	s.redirectBack(w, r)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	// Reaching this handler means the user already confirmed client-side
	// (hx-confirm); the controller's confirm hook grants it.
	s.ctrl.Delete(r.Context(), r.PathValue("id"))
	s.redirectBack(w, r)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	s.ctrl.AddItem()
	s.redirectBack(w, r)
}

// handleEvents streams refresh signals so the browser re-fetches the grid
// whenever the backend reports a menu change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	signals, cancel := s.refresh.Subscribe()
	defer cancel()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-signals:
			fmt.Fprint(w, "event: refresh\ndata: {}\n\n")
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

// redirectBack sends the browser to the menu page; htmx requests get the
// HX-Redirect header instead of a 303.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/admin/menu")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/menu", http.StatusSeeOther)
}

// patchFromForm binds the full edit form to a partial update. The form posts
// every field, so each one lands in the patch.
func patchFromForm(r *http.Request) domain.MenuItemPatch {
	str := func(key string) *string {
		v := strings.TrimSpace(r.FormValue(key))
		return &v
	}
	boolean := func(key string) *bool {
		v := r.FormValue(key) != ""
		return &v
	}

	var ingredients []string
	for _, part := range strings.Split(r.FormValue("ingredients"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			ingredients = append(ingredients, part)
		}
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	return domain.MenuItemPatch{
		Name: domain.LocalizedText{
			"en": strings.TrimSpace(r.FormValue("name_en")),
			"es": strings.TrimSpace(r.FormValue("name_es")),
		},
		Description: domain.LocalizedText{
			"en": strings.TrimSpace(r.FormValue("description_en")),
			"es": strings.TrimSpace(r.FormValue("description_es")),
		},
		Price:        str("price"),
		Category:     str("category"),
		IsPopular:    boolean("is_popular"),
		IsVegetarian: boolean("is_vegetarian"),
		Ingredients:  ingredients,
		Image:        str("image"),
	}
}
