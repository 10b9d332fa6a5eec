package sales

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

var moisPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Handler serves the sales report and export endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the report routes. The refresh route is mounted
// separately so the router can gate it on the admin cookie.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/monthly", h.monthly)
	r.Get("/reports/vendors", h.vendors)
	r.Get("/reports/vendor/{vendeur}", h.vendorDetail)
	r.Get("/reports/city", h.cities)
	r.Get("/reports/kpi/families", h.kpiFamilies)
	r.Get("/export/vente-vendeur", h.exportVenteCSV)
	r.Get("/export/kpi", h.exportKPIXLSX)
}

// MountAdminRoutes attaches the mutating routes.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/refresh/vente-vendeur", h.refresh)
}

func moisParam(r *http.Request) (string, error) {
	mois := r.URL.Query().Get("mois")
	if mois != "" && !moisPattern.MatchString(mois) {
		return "", fmt.Errorf("%w: mois must be YYYY-MM", httpx.ErrValidation)
	}
	return mois, nil
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Monthly(r.Context())
	if err != nil {
		h.logger.Error("monthly report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) vendors(w http.ResponseWriter, r *http.Request) {
	mois, err := moisParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals, err := h.service.Vendors(r.Context(), mois)
	if err != nil {
		h.logger.Error("vendors report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) vendorDetail(w http.ResponseWriter, r *http.Request) {
	vendeur := chi.URLParam(r, "vendeur")
	detail, err := h.service.VendorDetail(r.Context(), vendeur)
	if err != nil {
		h.logger.Error("vendor detail", slog.String("vendeur", vendeur), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) cities(w http.ResponseWriter, r *http.Request) {
	mois, err := moisParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals, err := h.service.Cities(r.Context(), mois)
	if err != nil {
		h.logger.Error("city report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) kpiFamilies(w http.ResponseWriter, r *http.Request) {
	mois, err := moisParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	kpis, err := h.service.KPIFamilies(r.Context(), mois)
	if err != nil {
		h.logger.Error("kpi families", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, kpis)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("refresh vente_vendeur", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("vente_vendeur refreshed")
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) exportVenteCSV(w http.ResponseWriter, r *http.Request) {
	mois := r.URL.Query().Get("mois")
	if !moisPattern.MatchString(mois) {
		httpx.RespondError(w, fmt.Errorf("%w: mois must be YYYY-MM", httpx.ErrValidation))
		return
	}
	rows, err := h.service.VenteForMonth(r.Context(), mois)
	if err != nil {
		h.logger.Error("export vente_vendeur", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=vente_vendeur_%s.csv", mois))
	if err := WriteVenteCSV(w, rows); err != nil {
		h.logger.Error("write vente csv", slog.Any("error", err))
	}
}

func (h *Handler) exportKPIXLSX(w http.ResponseWriter, r *http.Request) {
	mois, err := moisParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	kpis, err := h.service.KPIFamilies(r.Context(), mois)
	if err != nil {
		h.logger.Error("export kpi", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	name := "kpi.xlsx"
	if mois != "" {
		name = "kpi_" + mois + ".xlsx"
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	if err := WriteKPIXLSX(w, mois, kpis); err != nil {
		h.logger.Error("write kpi xlsx", slog.Any("error", err))
	}
}
