// Package api exposes the stub backend's wire surface: the session, menu
// table, and change feed endpoints the admin app's rest client consumes. It
// stands in for the hosted service during development and integration tests.
package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vparedes/menuadmin/internal/config"
	"github.com/vparedes/menuadmin/internal/stub/store"
)

type Server struct {
	store  *store.MenuStore
	hub    *Hub
	cfg    *config.StubConfig
	logger *slog.Logger
	router chi.Router

	// revoked holds the jti claims of signed-out tokens.
	revokedMu sync.Mutex
	revoked   map[string]struct{}
}

func New(cfg *config.StubConfig, menuStore *store.MenuStore, logger *slog.Logger) *Server {
	s := &Server{
		store:   menuStore,
		hub:     NewHub(logger),
		cfg:     cfg,
		logger:  logger,
		revoked: make(map[string]struct{}),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.apiKeyAuth)

		r.Post("/session", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			// The change feed stays open indefinitely; only the plain
			// request/response endpoints get a timeout.
			r.Get("/menu/changes", s.hub.ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(chimiddleware.Timeout(60 * time.Second))

				r.Get("/session", s.handleCheckSession)
				r.Post("/signout", s.handleSignOut)

				r.Get("/menu/items", s.handleListItems)
				r.Post("/menu/items", s.handleCreateItem)
				r.Patch("/menu/items/{id}", s.handlePatchItem)
				r.Delete("/menu/items/{id}", s.handleDeleteItem)
			})
		})
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close disconnects all change feed subscribers.
func (s *Server) Close() {
	s.hub.Close()
}

// apiKeyAuth validates the api_key header on every request.
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api_key") != s.cfg.APIKey {
			writeError(w, http.StatusForbidden, "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
