package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Service wraps the snapshot business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the snapshots in [from, to]; empty bounds are open.
func (s *Service) List(ctx context.Context, from, to string) ([]Daily, error) {
	if err := validRangeBounds(from, to); err != nil {
		return nil, err
	}
	return s.repo.Range(ctx, from, to)
}

// Upsert stores one day's entry. The existence check and the write are
// two statements; concurrent entries for the same new date can race and
// one of them will surface a duplicate error to retry.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (Daily, error) {
	d := req.toDaily()
	_, err := s.repo.FindByDate(ctx, d.Date)
	switch {
	case err == nil:
		if err := s.repo.Update(ctx, d); err != nil {
			return Daily{}, err
		}
	case errors.Is(err, httpx.ErrNotFound):
		if err := s.repo.Insert(ctx, d); err != nil {
			return Daily{}, err
		}
	default:
		return Daily{}, err
	}
	return d, nil
}

// PositionFor derives the BE breakdown for one date.
func (s *Service) PositionFor(ctx context.Context, date string) (Position, error) {
	if !validDay(date) {
		return Position{}, fmt.Errorf("%w: date must be YYYY-MM-DD", httpx.ErrValidation)
	}
	d, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return Position{}, err
	}
	return ComputePosition(*d), nil
}

// Comparison loads two snapshots and computes the deltas A - B.
func (s *Service) Comparison(ctx context.Context, dateA, dateB string) (Comparison, error) {
	if !validDay(dateA) || !validDay(dateB) {
		return Comparison{}, fmt.Errorf("%w: a and b must be YYYY-MM-DD", httpx.ErrValidation)
	}
	a, err := s.repo.FindByDate(ctx, dateA)
	if err != nil {
		return Comparison{}, err
	}
	b, err := s.repo.FindByDate(ctx, dateB)
	if err != nil {
		return Comparison{}, err
	}
	return Compare(*a, *b), nil
}

// CumulativeRange sums the flow metrics over [from, to] and keeps the
// last day's balances. With fullMonth set, the range resets to the
// calendar month of to, the end clamped to the newest entered date.
func (s *Service) CumulativeRange(ctx context.Context, from, to string, fullMonth bool) (Cumulative, error) {
	if fullMonth {
		if !validDay(to) {
			return Cumulative{}, fmt.Errorf("%w: to must be YYYY-MM-DD", httpx.ErrValidation)
		}
		var err error
		from, to, err = s.fullMonthBounds(ctx, to)
		if err != nil {
			return Cumulative{}, err
		}
	} else if err := validRangeBounds(from, to); err != nil {
		return Cumulative{}, err
	}
	days, err := s.repo.Range(ctx, from, to)
	if err != nil {
		return Cumulative{}, err
	}
	out := Accumulate(days)
	if out.Days == 0 {
		out.From, out.To = from, to
	}
	return out, nil
}

func (s *Service) fullMonthBounds(ctx context.Context, to string) (string, string, error) {
	from := normalize.FirstOfMonth(to)
	t, err := time.Parse(normalize.DayFormat, from)
	if err != nil {
		return "", "", fmt.Errorf("%w: to must be YYYY-MM-DD", httpx.ErrValidation)
	}
	end := t.AddDate(0, 1, -1).Format(normalize.DayFormat)

	maxDate, err := s.repo.MaxDate(ctx)
	if err != nil {
		return "", "", err
	}
	if maxDate != "" && maxDate < end {
		end = maxDate
	}
	return from, end, nil
}

func validDay(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse(normalize.DayFormat, s)
	return err == nil
}

func validRangeBounds(from, to string) error {
	if from != "" && !validDay(from) {
		return fmt.Errorf("%w: from must be YYYY-MM-DD", httpx.ErrValidation)
	}
	if to != "" && !validDay(to) {
		return fmt.Errorf("%w: to must be YYYY-MM-DD", httpx.ErrValidation)
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: from must not be after to", httpx.ErrValidation)
	}
	return nil
}
