package imports

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/sales"
)

type stubRepo struct {
	insertedTable string
	inserted      []sales.Invoice
	archived      int
	cleanCount    int64
	cleanErr      error
}

func (s *stubRepo) InsertSales(_ context.Context, table string, rows []sales.Invoice) (int, error) {
	s.insertedTable = table
	s.inserted = rows
	return len(rows), nil
}

func (s *stubRepo) ArchiveBatch(_ context.Context, _, _, _ string, rows []Row) error {
	s.archived = len(rows)
	return nil
}

func (s *stubRepo) CountSalesClean(context.Context) (int64, error) {
	return s.cleanCount, s.cleanErr
}

type stubClients struct {
	replaced []clients.ClientVendeur
}

func (s *stubClients) ReplaceAll(_ context.Context, rows []clients.ClientVendeur) (int64, error) {
	s.replaced = rows
	return int64(len(rows)), nil
}

func (s *stubClients) ListAll(context.Context) ([]clients.ClientVendeur, error) {
	return s.replaced, nil
}

func newTestService(repo *stubRepo, cl *stubClients) *Service {
	return NewService(repo, cl, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const salesCSV = "Date Facture;Code Client;Société;Vendeur;Total HT;Total TTC;N° Facture\n" +
	"15/03/2024;C001;Chez Nous;Dupont;100,00;120,00;F001\n" +
	"sans date;C002;Autre;Dupont;50,00;60,00;F002\n"

func TestImportSalesClean(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubClients{})

	summary, err := svc.ImportSalesClean(context.Background(), "ventes.csv", strings.NewReader(salesCSV))
	require.NoError(t, err)

	require.Equal(t, CategorySalesClean, repo.insertedTable)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, "2024-03-15", repo.inserted[0].DateFacture)

	require.Equal(t, 2, summary.RowsRead)
	require.Equal(t, 1, summary.RowsInserted)
	require.Equal(t, 1, summary.RowsDropped)
	require.NotEmpty(t, summary.BatchID)
	require.Equal(t, 2, repo.archived)
}

func TestImportClientVendeur(t *testing.T) {
	cl := &stubClients{}
	svc := newTestService(&stubRepo{}, cl)

	csv := "Code Client;Société;Groupe;Vendeur\nC001;Chez Nous;Restauration;Dupont\n"
	summary, err := svc.ImportClientVendeur(context.Background(), "clients.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, cl.replaced, 1)
	require.Equal(t, "Restauration", cl.replaced[0].Groupe)
	require.Equal(t, 1, summary.RowsInserted)
}

func TestVerifyDoesNotInsert(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubClients{})

	summary, err := svc.Verify(context.Background(), CategorySalesClean, "ventes.csv", strings.NewReader(salesCSV))
	require.NoError(t, err)
	require.True(t, summary.DryRun)
	require.Equal(t, 2, summary.RowsRead)
	require.Equal(t, 1, summary.RowsDropped)
	require.Empty(t, repo.inserted)
	require.Zero(t, repo.archived)
}

func TestVerifyUnknownCategory(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubClients{})
	_, err := svc.Verify(context.Background(), "inventaire", "x.csv", strings.NewReader("a;b\n1;2\n"))
	require.Error(t, err)
}
