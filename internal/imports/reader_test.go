package imports

import (
	"strings"
	"testing"
)

func TestReadCSVSemicolon(t *testing.T) {
	csv := "\xef\xbb\xbfN° Facture;Société;Total HT\nF001;Chez Nous;1 234,56\nF002;Épicerie;78,90\n"
	rows, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0]["n_facture"]; got != "F001" {
		t.Errorf("n_facture = %v, want F001", got)
	}
	if got := rows[0]["societe"]; got != "Chez Nous" {
		t.Errorf("societe = %v, want Chez Nous", got)
	}
	if got := rows[0]["total_ht"]; got != "1 234,56" {
		t.Errorf("total_ht = %v", got)
	}
}

func TestReadCSVComma(t *testing.T) {
	csv := "code_client,ville\nC001,Paris\n"
	rows, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 1 || rows[0]["ville"] != "Paris" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	csv := "code_client;ville;vendeur\nC001;Lyon\n"
	rows, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if _, ok := rows[0]["vendeur"]; ok {
		t.Errorf("vendeur should be absent on a short row")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("code_client;ville\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestReadUploadRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadUpload("ventes.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for .pdf upload")
	}
}
