package imports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/sales"
)

// salesAliases maps folded spreadsheet headers to the canonical sales
// columns. Exports from the ERP and the ones reworked by hand in Excel
// do not agree on header names, so several spellings feed one column.
var salesAliases = map[string]string{
	"date_facture": "date_facture",
	"date":         "date_facture",
	"code_client":  "code_client",
	"code":         "code_client",
	"client":       "client",
	"societe":      "client",
	"nom_client":   "client",
	"vendeur":      "vendeur",
	"commercial":   "vendeur",
	"ville":        "ville",
	"code_postal":  "code_postal",
	"cp":           "code_postal",
	"total_ht":     "total_ht",
	"montant_ht":   "total_ht",
	"ht":           "total_ht",
	"total_ttc":    "total_ttc",
	"montant_ttc":  "total_ttc",
	"ttc":          "total_ttc",
	"num_facture":  "num_facture",
	"n_facture":    "num_facture",
	"numero":       "num_facture",
	"facture":      "num_facture",
}

// clientAliases does the same for the client/vendor dimension file.
var clientAliases = map[string]string{
	"code_client": "code_client",
	"code":        "code_client",
	"societe":     "societe",
	"client":      "societe",
	"nom":         "nom",
	"prenom":      "prenom",
	"groupe":      "groupe",
	"famille":     "groupe",
	"code_postal": "code_postal",
	"cp":          "code_postal",
	"ville":       "ville",
	"vendeur":     "vendeur",
	"commercial":  "vendeur",
}

func remap(row Row, aliases map[string]string) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if canon, ok := aliases[k]; ok {
			if _, taken := out[canon]; !taken {
				out[canon] = v
			}
		}
	}
	return out
}

// asString renders a raw cell as trimmed text. XLSX numeric cells come
// through as float64 and must not pick up an exponent.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// CleanSales maps rows into invoices. Rows without a parseable invoice
// date are dropped and counted; amounts that fail to parse become 0.
func CleanSales(rows []Row) ([]sales.Invoice, []RowIssue) {
	invoices := make([]sales.Invoice, 0, len(rows))
	var issues []RowIssue
	for i, raw := range rows {
		row := remap(raw, salesAliases)
		date, ok := normalize.ParseDate(row["date_facture"])
		if !ok {
			issues = append(issues, RowIssue{Line: i + 2, Reason: "date_facture invalide"})
			continue
		}
		invoices = append(invoices, sales.Invoice{
			DateFacture: date,
			CodeClient:  normalize.NormalizeCode(asString(row["code_client"])),
			Client:      asString(row["client"]),
			Vendeur:     asString(row["vendeur"]),
			Ville:       asString(row["ville"]),
			CodePostal:  asString(row["code_postal"]),
			TotalHT:     normalize.ParseAmount(row["total_ht"]),
			TotalTTC:    normalize.ParseAmount(row["total_ttc"]),
			NumFacture:  asString(row["num_facture"]),
		})
	}
	return invoices, issues
}

// CleanClientVendeur maps rows into dimension entries. A row needs a
// client code or a company name so the report join can key it.
func CleanClientVendeur(rows []Row) ([]clients.ClientVendeur, []RowIssue) {
	out := make([]clients.ClientVendeur, 0, len(rows))
	var issues []RowIssue
	for i, raw := range rows {
		row := remap(raw, clientAliases)
		code := normalize.NormalizeCode(asString(row["code_client"]))
		societe := asString(row["societe"])
		if code == "" && societe == "" {
			issues = append(issues, RowIssue{Line: i + 2, Reason: "code_client et societe absents"})
			continue
		}
		out = append(out, clients.ClientVendeur{
			CodeClient: code,
			Societe:    societe,
			Nom:        asString(row["nom"]),
			Prenom:     asString(row["prenom"]),
			Groupe:     asString(row["groupe"]),
			CodePostal: asString(row["code_postal"]),
			Ville:      asString(row["ville"]),
			Vendeur:    asString(row["vendeur"]),
		})
	}
	return out, issues
}
