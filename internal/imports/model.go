// Package imports ingests the sales and client spreadsheets: CSV or
// XLSX upload, French header mapping, row cleaning, chunked insert, and
// an archive of every accepted batch.
package imports

// Import categories, also the archive table's category column.
const (
	CategorySales         = "sales"
	CategorySalesClean    = "sales_clean"
	CategoryClientVendeur = "client_vendeur"
)

// RowIssue describes one rejected row in a summary or dry run.
type RowIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Summary is the result of an import (or of a verify dry run, in which
// case nothing was inserted).
type Summary struct {
	BatchID      string     `json:"batch_id,omitempty"`
	Category     string     `json:"category"`
	Filename     string     `json:"filename"`
	RowsRead     int        `json:"rows_read"`
	RowsInserted int        `json:"rows_inserted"`
	RowsDropped  int        `json:"rows_dropped"`
	DryRun       bool       `json:"dry_run,omitempty"`
	Issues       []RowIssue `json:"issues,omitempty"`
}

// maxReportedIssues caps the sample of per-row diagnostics returned to
// the client; the counts stay exact.
const maxReportedIssues = 50
