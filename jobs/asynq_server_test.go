package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type stubEnqueuer struct {
	payload RefreshVenteVendeurPayload
	err     error
}

func (s *stubEnqueuer) EnqueueRefreshVenteVendeur(_ context.Context, p RefreshVenteVendeurPayload) (*asynq.TaskInfo, error) {
	s.payload = p
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{ID: "task-123"}, nil
}

func newJobsRouter(enqueuer RefreshEnqueuer) http.Handler {
	h := NewHandler(nil, enqueuer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.MountRoutes(r)
	h.MountAdminRoutes(r)
	return r
}

func TestEnqueueRefreshAccepted(t *testing.T) {
	enq := &stubEnqueuer{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh/vente-vendeur/async", nil)
	newJobsRouter(enq).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Contains(t, rec.Body.String(), "task-123")
	require.Equal(t, "api", enq.payload.RequestedBy)
	require.False(t, enq.payload.RequestedAt.IsZero())
}

func TestEnqueueRefreshQueueDown(t *testing.T) {
	enq := &stubEnqueuer{err: errors.New("redis down")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh/vente-vendeur/async", nil)
	newJobsRouter(enq).ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEnqueueRefreshWithoutClient(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh/vente-vendeur/async", nil)
	newJobsRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestJobsHealthWithoutInspector(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/jobs", nil)
	newJobsRouter(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"queue":"default","pending":0}`, rec.Body.String())
}
