package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vparedes/menuadmin/internal/admin"
	"github.com/vparedes/menuadmin/internal/devstate"
)

type Server struct {
	ctrl      *admin.Controller
	dev       *devstate.Store
	toasts    *ToastQueue
	refresh   *RefreshHub
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	locale    string
	logger    *slog.Logger
}

func NewServer(ctrl *admin.Controller, dev *devstate.Store, toasts *ToastQueue, refresh *RefreshHub, tmpl embed.FS, locale string, logger *slog.Logger) *Server {
	s := &Server{
		ctrl:      ctrl,
		dev:       dev,
		toasts:    toasts,
		refresh:   refresh,
		templates: tmpl,
		mux:       http.NewServeMux(),
		locale:    locale,
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"truncate": truncate,
			"join":     strings.Join,
		},
	}
	s.tmplFuncs["localized"] = s.localized
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/menu", http.StatusSeeOther)
	})
	s.mux.HandleFunc("GET /admin", s.handleLogin)
	s.mux.HandleFunc("POST /admin/dev", s.handleEnableDevMode)
	s.mux.HandleFunc("GET /admin/menu", s.handleMenuPage)
	s.mux.HandleFunc("GET /admin/menu/events", s.handleEvents)
	s.mux.HandleFunc("GET /admin/menu/{id}/edit", s.handleEditModal)
	s.mux.HandleFunc("POST /admin/menu/{id}", s.handleUpdateItem)
	s.mux.HandleFunc("POST /admin/menu/{id}/delete", s.handleDeleteItem)
	s.mux.HandleFunc("POST /admin/menu/new", s.handleAddItem)
	s.mux.HandleFunc("POST /admin/signout", s.handleSignOut)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting admin server", "addr", addr)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s,
		ReadTimeout: 60 * time.Second,
		// No WriteTimeout: the change-event stream stays open indefinitely.
		IdleTimeout: 120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
func (s *Server) renderPartial(w http.ResponseWriter, file, name string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, name, data)
}

func (s *Server) localized(text map[string]string) string {
	if v, ok := text[s.locale]; ok {
		return v
	}
	return text["en"]
}

// truncate shortens a description for card display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndexByte(s[:max], ' ')
	if cut <= 0 {
		cut = max
	}
	return s[:cut] + "…"
}
