package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Handler serves the daily snapshot endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the metrics HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches the read-only routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/metrics", h.list)
	r.Get("/metrics/comparison", h.comparison)
	r.Get("/metrics/cumulative", h.cumulative)
	r.Get("/metrics/position", h.position)
}

// MountAdminRoutes attaches the data-entry route.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/metrics", h.upsert)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days, err := h.service.List(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.logger.Error("list metrics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if days == nil {
		days = []Daily{}
	}
	httpx.JSON(w, http.StatusOK, days)
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
	d, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		h.logger.Error("upsert metric", slog.String("date", req.Date), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("metric saved", slog.String("date", d.Date))
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) comparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cmp, err := h.service.Comparison(r.Context(), q.Get("a"), q.Get("b"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cmp)
}

func (h *Handler) cumulative(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fullMonth := normalize.ParseBool(q.Get("full_month"))
	cum, err := h.service.CumulativeRange(r.Context(), q.Get("from"), q.Get("to"), fullMonth)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cum)
}

func (h *Handler) position(w http.ResponseWriter, r *http.Request) {
	pos, err := h.service.PositionFor(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pos)
}
