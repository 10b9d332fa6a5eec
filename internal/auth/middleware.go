package auth

import (
	"log/slog"
	"net/http"
)

// Middleware gates API routes on the role cookies.
type Middleware struct {
	Logger *slog.Logger
}

// SessionFromRequest reads the role cookies. ok is false when no valid
// role cookie is present.
func SessionFromRequest(r *http.Request) (Session, bool) {
	c, err := r.Cookie(RoleCookie)
	if err != nil || !KnownRole(c.Value) {
		return Session{}, false
	}
	sess := Session{Role: c.Value, Landing: Landing(c.Value)}
	if a, err := r.Cookie(AdminCookie); err == nil && a.Value == "1" {
		sess.Admin = true
	}
	return sess, true
}

// RequireRole rejects requests without a valid role cookie.
func (m Middleware) RequireRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromRequest(r); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without the admin cookie. Import and
// data-entry endpoints are admin or data_entry only.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromRequest(r)
		if !ok {
			unauthorized(w)
			return
		}
		if !sess.Admin && sess.Role != RoleDataEntry {
			if m.Logger != nil {
				m.Logger.Warn("admin route refused", slog.String("role", sess.Role))
			}
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Non autorisé"}`))
}
