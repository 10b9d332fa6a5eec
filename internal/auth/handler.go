package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Handler serves the login and logout endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	cookieTTL time.Duration
	secure    bool
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, cookieTTL time.Duration, secure bool) *Handler {
	if cookieTTL <= 0 {
		cookieTTL = 720 * time.Hour
	}
	return &Handler{logger: logger, service: service, cookieTTL: cookieTTL, secure: secure}
}

// MountRoutes attaches the auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Identifiants manquants")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.Message(w, http.StatusBadRequest, "Identifiants manquants")
		return
	}

	sess, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.logger.Error("authenticate", slog.Any("error", err))
		}
		httpx.Message(w, http.StatusUnauthorized, "Identifiants invalides")
		return
	}

	maxAge := int(h.cookieTTL.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookie,
		Value:    sess.Role,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	if sess.Admin {
		http.SetCookie(w, &http.Cookie{
			Name:     AdminCookie,
			Value:    "1",
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	h.logger.Info("login", slog.String("role", sess.Role))
	httpx.JSON(w, http.StatusOK, sess)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{RoleCookie, AdminCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"redirect": "/login"})
}
