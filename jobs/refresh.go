package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sweetchef/sc-dashboard/internal/sales"
)

// NewRefreshVenteVendeurHandler returns the asynq handler that rebuilds
// vente_vendeur. The sales service bumps the report cache on success.
func NewRefreshVenteVendeurHandler(logger *slog.Logger, service *sales.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RefreshVenteVendeurPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		start := time.Now()
		if err := service.Refresh(ctx); err != nil {
			logger.Error("vente_vendeur rebuild failed",
				slog.String("requested_by", payload.RequestedBy),
				slog.Any("error", err))
			return err
		}
		logger.Info("vente_vendeur rebuilt",
			slog.String("requested_by", payload.RequestedBy),
			slog.Duration("took", time.Since(start)))
		return nil
	}
}
