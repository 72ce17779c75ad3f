package web

import "net/http"

// handleLogin renders the login route. The real sign-in flow lives with the
// hosted backend; this page only explains that and offers development mode
// for working without a backend.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{
			"Toasts":  s.toasts.Drain(),
			"DevMode": s.dev.Enabled(),
		},
		"base.html", "pages/login.html", "partials/toasts.html",
	); err != nil {
		s.logger.Error("render login page failed", "error", err)
	}
}

func (s *Server) handleEnableDevMode(w http.ResponseWriter, r *http.Request) {
	if err := s.dev.Enable(); err != nil {
		s.logger.Error("enabling development mode failed", "error", err)
		http.Error(w, "could not enable development mode", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/menu", http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.ctrl.SignOut(r.Context())

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/admin")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
