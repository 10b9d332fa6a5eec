// Package jobs runs the background work: the nightly vente_vendeur
// rebuild and anything an admin triggers out of band.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue every dashboard job runs on.
	QueueDefault = "default"
	// TaskTypeRefreshVenteVendeur rebuilds the vente_vendeur table from
	// sales_clean and bumps the report cache.
	TaskTypeRefreshVenteVendeur = "reports:refresh_vente_vendeur"
)

// RefreshVenteVendeurPayload records who or what asked for the rebuild.
type RefreshVenteVendeurPayload struct {
	RequestedBy string    `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewRefreshVenteVendeurTask constructs the rebuild task.
func NewRefreshVenteVendeurTask(payload RefreshVenteVendeurPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRefreshVenteVendeur, data), nil
}
