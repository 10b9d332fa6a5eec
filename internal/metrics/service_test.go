package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

type stubRepo struct {
	rows    map[string]Daily
	inserts int
	updates int
}

func newStubRepo(days ...Daily) *stubRepo {
	r := &stubRepo{rows: make(map[string]Daily)}
	for _, d := range days {
		r.rows[d.Date] = d
	}
	return r
}

func (r *stubRepo) FindByDate(_ context.Context, date string) (*Daily, error) {
	if d, ok := r.rows[date]; ok {
		return &d, nil
	}
	return nil, httpx.ErrNotFound
}

func (r *stubRepo) Range(_ context.Context, from, to string) ([]Daily, error) {
	var dates []string
	for date := range r.rows {
		if (from == "" || date >= from) && (to == "" || date <= to) {
			dates = append(dates, date)
		}
	}
	// map order is random, sort by date
	for i := 0; i < len(dates); i++ {
		for j := i + 1; j < len(dates); j++ {
			if dates[j] < dates[i] {
				dates[i], dates[j] = dates[j], dates[i]
			}
		}
	}
	out := make([]Daily, 0, len(dates))
	for _, date := range dates {
		out = append(out, r.rows[date])
	}
	return out, nil
}

func (r *stubRepo) Insert(_ context.Context, d Daily) error {
	if _, ok := r.rows[d.Date]; ok {
		return httpx.ErrDuplicate
	}
	r.rows[d.Date] = d
	r.inserts++
	return nil
}

func (r *stubRepo) Update(_ context.Context, d Daily) error {
	if _, ok := r.rows[d.Date]; !ok {
		return httpx.ErrNotFound
	}
	r.rows[d.Date] = d
	r.updates++
	return nil
}

func (r *stubRepo) MaxDate(context.Context) (string, error) {
	max := ""
	for date := range r.rows {
		if date > max {
			max = date
		}
	}
	return max, nil
}

func TestUpsertInsertsThenUpdates(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	if _, err := svc.Upsert(context.Background(), UpsertRequest{Date: "2024-03-15", Revenue: 100}); err != nil {
		t.Fatalf("insert path: %v", err)
	}
	if repo.inserts != 1 || repo.updates != 0 {
		t.Fatalf("expected one insert, got %d/%d", repo.inserts, repo.updates)
	}

	if _, err := svc.Upsert(context.Background(), UpsertRequest{Date: "2024-03-15", Revenue: 250}); err != nil {
		t.Fatalf("update path: %v", err)
	}
	if repo.updates != 1 {
		t.Fatalf("expected one update, got %d", repo.updates)
	}
	if repo.rows["2024-03-15"].Revenue != 250 {
		t.Fatalf("update did not stick: %+v", repo.rows["2024-03-15"])
	}
}

func TestComparisonMissingDate(t *testing.T) {
	svc := NewService(newStubRepo(Daily{Date: "2024-03-01"}))
	_, err := svc.Comparison(context.Background(), "2024-03-01", "2024-02-01")
	if !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestComparisonValidatesDates(t *testing.T) {
	svc := NewService(newStubRepo())
	_, err := svc.Comparison(context.Background(), "2024-3-1", "2024-02-01")
	if !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCumulativeFullMonthClampsToMaxDate(t *testing.T) {
	repo := newStubRepo(
		Daily{Date: "2024-03-01", Revenue: 100},
		Daily{Date: "2024-03-10", Revenue: 200},
		Daily{Date: "2024-03-18", Revenue: 50, ReceivablesDue: 700},
	)
	svc := NewService(repo)

	cum, err := svc.CumulativeRange(context.Background(), "", "2024-03-25", true)
	if err != nil {
		t.Fatalf("cumulative: %v", err)
	}
	if cum.Revenue != 350 {
		t.Fatalf("revenue = %v, want 350", cum.Revenue)
	}
	if cum.To != "2024-03-18" {
		t.Fatalf("range must clamp to newest data, got %s", cum.To)
	}
	if cum.Last.ReceivablesDue != 700 {
		t.Fatalf("snapshot must come from last day: %+v", cum.Last)
	}
}

func TestCumulativeRejectsInvertedRange(t *testing.T) {
	svc := NewService(newStubRepo())
	_, err := svc.CumulativeRange(context.Background(), "2024-03-10", "2024-03-01", false)
	if !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
