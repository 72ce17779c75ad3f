package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

// handleLogin checks the configured admin credentials and issues a signed
// session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email != s.cfg.AdminEmail || req.Password != s.cfg.AdminPassword {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.Email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("signing session token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not issue session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) handleCheckSession(w http.ResponseWriter, r *http.Request) {
	// requireSession already validated the token.
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// handleSignOut revokes the presented token.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.parseToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	s.revokedMu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.revokedMu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// requireSession rejects requests without a valid, unrevoked bearer token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.parseToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		s.revokedMu.Lock()
		_, revoked := s.revoked[claims.ID]
		s.revokedMu.Unlock()
		if revoked {
			writeError(w, http.StatusUnauthorized, "session signed out")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) parseToken(r *http.Request) (*jwt.RegisteredClaims, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
