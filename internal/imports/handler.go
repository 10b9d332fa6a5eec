package imports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Handler serves the upload and import health endpoints.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	maxUploadBytes int64
}

func NewHandler(logger *slog.Logger, service *Service, maxUploadBytes int64) *Handler {
	return &Handler{logger: logger, service: service, maxUploadBytes: maxUploadBytes}
}

// MountAdminRoutes attaches the upload routes, all admin gated.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/import/sales", h.importWith(h.service.ImportSales))
	r.Post("/import/sales-clean", h.importWith(h.service.ImportSalesClean))
	r.Post("/import/client-vendeur", h.importWith(h.service.ImportClientVendeur))
	r.Post("/import/verify", h.verify)
}

// MountRoutes attaches the open health route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health/sales-clean", h.salesCleanHealth)
}

func (h *Handler) uploadFile(r *http.Request) (multipart.File, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, "", fmt.Errorf("%w: fichier manquant ou trop volumineux", httpx.ErrValidation)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: champ 'file' requis", httpx.ErrValidation)
	}
	return file, header.Filename, nil
}

func (h *Handler) importWith(run func(ctx context.Context, filename string, r io.Reader) (Summary, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		file, filename, err := h.uploadFile(req)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		defer file.Close()

		summary, err := run(req.Context(), filename, file)
		if err != nil {
			h.logger.Error("import failed", slog.String("file", filename), slog.Any("error", err))
			httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err.Error()))
			return
		}
		httpx.JSON(w, http.StatusOK, summary)
	}
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = CategorySalesClean
	}
	file, filename, err := h.uploadFile(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	defer file.Close()

	summary, err := h.service.Verify(r.Context(), category, filename, file)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err.Error()))
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) salesCleanHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SalesCleanCount(r.Context())
	if err != nil {
		if httpx.IsUndefinedTable(err) {
			httpx.JSON(w, http.StatusOK, map[string]any{"ok": false, "detail": "table absente"})
			return
		}
		h.logger.Error("sales_clean health", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true, "rows": count})
}
