package ebe

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Handler serves the monthly EBE endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the EBE HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches the read route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ebe", h.history)
}

// MountAdminRoutes attaches the data-entry route.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/ebe", h.upsert)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.History(r.Context())
	if err != nil {
		h.logger.Error("ebe history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	view, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		h.logger.Error("upsert ebe", slog.String("month", req.Month), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("ebe saved", slog.String("month", view.Month))
	httpx.JSON(w, http.StatusOK, view)
}
