package activity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Handler serves the activity endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the activity HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the activity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/activity", h.active)
	r.Get("/reports/inactive", h.inactive)
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Active(r.Context(), r.URL.Query().Get("mois"))
	if err != nil {
		h.logger.Error("activity report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) inactive(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Inactive(r.Context(), r.URL.Query().Get("mois"))
	if err != nil {
		h.logger.Error("inactive report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
