package sales

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

// csvStreamer writes semicolon separated CSV with CRLF line endings,
// flushing in batches so large exports do not buffer whole.
type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.Comma = ';'
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.flush()
	}
	return nil
}

func (s *csvStreamer) flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.flush()
}

// WriteVenteCSV renders the month's vendor-attributed sales as the CSV
// the commercial team reimports into their spreadsheets: semicolon
// separated, decimal commas, one line per (vendeur, client).
func WriteVenteCSV(w io.Writer, rows []VenteRow) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeRow([]string{"Vendeur", "Mois", "Code Client", "Client", "Ville", "Commandes", "Total HT", "Total TTC"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := streamer.writeRow([]string{
			row.Vendeur,
			row.Mois,
			row.CodeClient,
			row.Client,
			row.Ville,
			strconv.Itoa(row.Commandes),
			normalize.FormatAmountFR(row.TotalHT),
			normalize.FormatAmountFR(row.TotalTTC),
		}); err != nil {
			return err
		}
	}
	return streamer.Close()
}

// WriteKPIXLSX renders the family KPI rollup as a workbook.
func WriteKPIXLSX(w io.Writer, mois string, kpis []FamilyKPI) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "KPI"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	title := "KPI par famille"
	if mois != "" {
		title += " " + mois
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	headers := []string{"Famille", "Clients", "Commandes", "Total HT", "Total TTC"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, kpi := range kpis {
		values := []any{kpi.Groupe, kpi.Clients, kpi.Commandes, kpi.TotalHT, kpi.TotalTTC}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
