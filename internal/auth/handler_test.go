package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discard() *Handler {
	logger := newTestLogger()
	return NewHandler(logger, NewService(stubRepo{}), 720*time.Hour, false)
}

func TestLoginIssuesRoleCookie(t *testing.T) {
	h := discard()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ibrahim","password":"ibrahim2025"}`))
	rec := httptest.NewRecorder()
	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	var role *http.Cookie
	for _, c := range cookies {
		if c.Name == RoleCookie {
			role = c
		}
	}
	require.NotNil(t, role)
	require.Equal(t, RoleIbrahim, role.Value)
	require.True(t, role.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, role.SameSite)
	require.Equal(t, int((720 * time.Hour).Seconds()), role.MaxAge)
	require.Contains(t, rec.Body.String(), `"/ibrahim"`)
}

func TestLoginMissingFields(t *testing.T) {
	h := discard()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"icham"}`))
	rec := httptest.NewRecorder()
	h.login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Identifiants manquants")
}

func TestLoginBadCredentials(t *testing.T) {
	h := discard()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"icham","password":"x"}`))
	rec := httptest.NewRecorder()
	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Identifiants invalides")
}

func TestLogoutClearsCookies(t *testing.T) {
	h := discard()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	require.True(t, cleared[RoleCookie])
	require.True(t, cleared[AdminCookie])
}

func TestGateRejectsMissingCookie(t *testing.T) {
	mw := Middleware{Logger: newTestLogger()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly", nil)
	rec := httptest.NewRecorder()
	mw.RequireRole(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Non autorisé")
}

func TestGateAcceptsKnownRole(t *testing.T) {
	mw := Middleware{Logger: newTestLogger()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/reports/monthly", nil)
	req.AddCookie(&http.Cookie{Name: RoleCookie, Value: RoleIcham})
	rec := httptest.NewRecorder()
	mw.RequireRole(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGate(t *testing.T) {
	mw := Middleware{Logger: newTestLogger()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/import/sales", nil)
	req.AddCookie(&http.Cookie{Name: RoleCookie, Value: RoleIcham})
	rec := httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/import/sales", nil)
	req.AddCookie(&http.Cookie{Name: RoleCookie, Value: RoleAdmin})
	req.AddCookie(&http.Cookie{Name: AdminCookie, Value: "1"})
	rec = httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
