package sales

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteVenteCSVFrenchLocale(t *testing.T) {
	rows := []VenteRow{
		{Vendeur: "Karim", Mois: "2024-01", CodeClient: "CL001", Client: "Boulangerie Nord", Ville: "Lille", Commandes: 2, TotalHT: 1234.56, TotalTTC: 1481.47},
		{Vendeur: "Nadia", Mois: "2024-01", CodeClient: "CL002", Client: `Traiteur "Chez;Nous"`, Ville: "Nice", Commandes: 1, TotalHT: 12.5, TotalTTC: 15},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVenteCSV(&buf, rows))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Vendeur;Mois;Code Client;Client;Ville;Commandes;Total HT;Total TTC", lines[0])
	require.Equal(t, "Karim;2024-01;CL001;Boulangerie Nord;Lille;2;1234,56;1481,47", lines[1])
	// Fields holding quotes or semicolons are quoted with doubled quotes.
	require.Contains(t, lines[2], `"Traiteur ""Chez;Nous"""`)
	require.True(t, strings.HasSuffix(lines[2], "12,5;15"))
}

func TestWriteKPIXLSX(t *testing.T) {
	kpis := []FamilyKPI{
		{Groupe: "Boulangerie", Clients: 3, Commandes: 12, TotalHT: 4500.5, TotalTTC: 5400.6},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteKPIXLSX(&buf, "2024-01", kpis))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("KPI", "A1")
	require.NoError(t, err)
	require.Equal(t, "KPI par famille 2024-01", title)

	groupe, err := f.GetCellValue("KPI", "A3")
	require.NoError(t, err)
	require.Equal(t, "Boulangerie", groupe)
}
