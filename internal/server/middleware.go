package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"moviebase/pkg/domain"
)

// forbiddenError marks requests from a valid session that lacks rights to
// the targeted resource.
type forbiddenError struct {
	msg string
}

func (e *forbiddenError) Error() string { return e.msg }

func forbidden(msg string) error { return &forbiddenError{msg: msg} }

// authedHandler is a handler that runs with a resolved account.
type authedHandler func(w http.ResponseWriter, r *http.Request, acct domain.Account)

// bearerToken extracts the session token from the Authorization header,
// with or without the Bearer prefix.
func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return raw
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

// withRoles resolves the session and admits only the listed roles. A token
// revoked by a newer login fails with 401 and the revocation message; a
// missing, undecodable, or wrong-role session gets a generic Unauthorized.
func (s *Server) withRoles(next authedHandler, allowed ...domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acct, ok, err := s.app.ValidateSession(r.Context(), bearerToken(r))
		if err != nil {
			s.writeError(w, err)
			return
		}
		if !ok || !roleAllowed(acct.Role, allowed) {
			writeJSON(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		next(w, r, acct)
	}
}

// withRecover turns handler panics into 500 responses.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "panic", fmt.Sprint(rec), "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, "Internal Server Error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
