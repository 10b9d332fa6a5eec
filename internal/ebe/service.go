package ebe

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Service wraps the monthly EBE business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// History returns every stored month with its derived figures.
func (s *Service) History(ctx context.Context) ([]View, error) {
	months, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(months))
	for _, m := range months {
		out = append(out, Derive(m))
	}
	return out, nil
}

// Upsert stores one month's inputs, normalising the key to the first of
// month. Same existence-check pattern as the daily snapshots.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (View, error) {
	month := normalize.FirstOfMonth(req.Month)
	if month == "" {
		return View{}, fmt.Errorf("%w: month must be a date", httpx.ErrValidation)
	}
	m := Monthly{
		Month:           month,
		Turnover:        req.Turnover,
		Purchases:       req.Purchases,
		ExternalCharges: req.ExternalCharges,
		Salaries:        req.Salaries,
		ProductionTaxes: req.ProductionTaxes,
	}
	_, err := s.repo.FindByMonth(ctx, month)
	switch {
	case err == nil:
		if err := s.repo.Update(ctx, m); err != nil {
			return View{}, err
		}
	case errors.Is(err, httpx.ErrNotFound):
		if err := s.repo.Insert(ctx, m); err != nil {
			return View{}, err
		}
	default:
		return View{}, err
	}
	return Derive(m), nil
}
