package imports

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/platform/cache"
)

// Service runs the import pipeline: parse, clean, insert, archive.
type Service struct {
	repo    Repository
	clients clients.Repository
	cache   *cache.Cache
	logger  *slog.Logger
}

func NewService(repo Repository, clientRepo clients.Repository, c *cache.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, clients: clientRepo, cache: c, logger: logger}
}

// ImportSales loads an upload into the raw sales table.
func (s *Service) ImportSales(ctx context.Context, filename string, r io.Reader) (Summary, error) {
	return s.importInvoices(ctx, CategorySales, filename, r)
}

// ImportSalesClean loads an upload into sales_clean and invalidates the
// report cache, since every report derives from that table.
func (s *Service) ImportSalesClean(ctx context.Context, filename string, r io.Reader) (Summary, error) {
	summary, err := s.importInvoices(ctx, CategorySalesClean, filename, r)
	if err != nil {
		return summary, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump after import failed", slog.String("error", err.Error()))
	}
	return summary, nil
}

func (s *Service) importInvoices(ctx context.Context, category, filename string, r io.Reader) (Summary, error) {
	rows, err := ReadUpload(filename, r)
	if err != nil {
		return Summary{}, err
	}
	invoices, issues := CleanSales(rows)

	inserted, err := s.repo.InsertSales(ctx, category, invoices)
	if err != nil {
		return Summary{}, err
	}

	batchID := uuid.NewString()
	if err := s.repo.ArchiveBatch(ctx, batchID, category, filename, rows); err != nil {
		s.logger.Warn("import archive failed",
			slog.String("batch_id", batchID), slog.String("error", err.Error()))
	}

	summary := newSummary(batchID, category, filename, len(rows), inserted, issues)
	s.logger.Info("import done",
		slog.String("category", category),
		slog.String("batch_id", batchID),
		slog.Int("rows_read", summary.RowsRead),
		slog.Int("rows_inserted", summary.RowsInserted),
		slog.Int("rows_dropped", summary.RowsDropped))
	return summary, nil
}

// ImportClientVendeur replaces the client/vendor dimension wholesale.
func (s *Service) ImportClientVendeur(ctx context.Context, filename string, r io.Reader) (Summary, error) {
	rows, err := ReadUpload(filename, r)
	if err != nil {
		return Summary{}, err
	}
	entries, issues := CleanClientVendeur(rows)

	inserted, err := s.clients.ReplaceAll(ctx, entries)
	if err != nil {
		return Summary{}, fmt.Errorf("replace client_vendeur: %w", err)
	}

	batchID := uuid.NewString()
	if err := s.repo.ArchiveBatch(ctx, batchID, CategoryClientVendeur, filename, rows); err != nil {
		s.logger.Warn("import archive failed",
			slog.String("batch_id", batchID), slog.String("error", err.Error()))
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("cache bump after import failed", slog.String("error", err.Error()))
	}
	return newSummary(batchID, CategoryClientVendeur, filename, len(rows), int(inserted), issues), nil
}

// Verify runs the parse and clean stages without touching the database,
// so an operator can check a file before committing it.
func (s *Service) Verify(ctx context.Context, category, filename string, r io.Reader) (Summary, error) {
	rows, err := ReadUpload(filename, r)
	if err != nil {
		return Summary{}, err
	}
	var (
		accepted int
		issues   []RowIssue
	)
	switch category {
	case CategorySales, CategorySalesClean:
		invoices, iss := CleanSales(rows)
		accepted, issues = len(invoices), iss
	case CategoryClientVendeur:
		entries, iss := CleanClientVendeur(rows)
		accepted, issues = len(entries), iss
	default:
		return Summary{}, fmt.Errorf("catégorie inconnue: %s", category)
	}
	summary := newSummary("", category, filename, len(rows), accepted, issues)
	summary.DryRun = true
	return summary, nil
}

// SalesCleanCount reports how many rows sales_clean holds.
func (s *Service) SalesCleanCount(ctx context.Context) (int64, error) {
	return s.repo.CountSalesClean(ctx)
}

func newSummary(batchID, category, filename string, read, inserted int, issues []RowIssue) Summary {
	if len(issues) > maxReportedIssues {
		issues = issues[:maxReportedIssues]
	}
	return Summary{
		BatchID:      batchID,
		Category:     category,
		Filename:     filename,
		RowsRead:     read,
		RowsInserted: inserted,
		RowsDropped:  read - inserted,
		Issues:       issues,
	}
}
