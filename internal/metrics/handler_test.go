package metrics

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(repo Repository) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(repo))
	r := chi.NewRouter()
	h.MountRoutes(r)
	h.MountAdminRoutes(r)
	return r
}

func TestCumulativeFullMonthSpellings(t *testing.T) {
	repo := newStubRepo(
		Daily{Date: "2024-03-01", Revenue: 100},
		Daily{Date: "2024-03-10", Revenue: 50},
		Daily{Date: "2024-03-18", Revenue: 25},
	)
	router := newTestRouter(repo)

	// The flag arrives as "1" from the dashboard and as oui/vrai from
	// hand-built URLs; all spellings widen the range to the whole month.
	for _, spelling := range []string{"1", "oui", "vrai", "true"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics/cumulative?from=2024-03-09&to=2024-03-10&full_month="+spelling, nil)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("full_month=%s: status %d", spelling, rec.Code)
		}
		var cum Cumulative
		if err := json.Unmarshal(rec.Body.Bytes(), &cum); err != nil {
			t.Fatalf("full_month=%s: decode: %v", spelling, err)
		}
		if cum.Revenue != 175 {
			t.Fatalf("full_month=%s: revenue = %v, want whole month 175", spelling, cum.Revenue)
		}
	}

	// Absent or falsy keeps the requested range.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics/cumulative?from=2024-03-09&to=2024-03-10&full_month=non", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var cum Cumulative
	if err := json.Unmarshal(rec.Body.Bytes(), &cum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cum.Revenue != 50 {
		t.Fatalf("revenue = %v, want 50 for the narrow range", cum.Revenue)
	}
}
