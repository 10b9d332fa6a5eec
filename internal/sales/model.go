// Package sales aggregates imported invoice rows into the monthly,
// vendor, client, and city reports the dashboard serves.
package sales

// Invoice is one imported transaction row. Immutable once inserted.
type Invoice struct {
	ID          int64   `json:"id"`
	DateFacture string  `json:"date_facture"`
	CodeClient  string  `json:"code_client"`
	Client      string  `json:"client"`
	Vendeur     string  `json:"vendeur"`
	Ville       string  `json:"ville"`
	CodePostal  string  `json:"code_postal"`
	TotalHT     float64 `json:"total_ht"`
	TotalTTC    float64 `json:"total_ttc"`
	NumFacture  string  `json:"num_facture"`
}

// VenteRow is one line of the denormalized vente_vendeur view table.
type VenteRow struct {
	Vendeur    string  `json:"vendeur"`
	Mois       string  `json:"mois"`
	CodeClient string  `json:"code_client"`
	Client     string  `json:"client"`
	Ville      string  `json:"ville"`
	Commandes  int     `json:"commandes"`
	TotalHT    float64 `json:"total_ht"`
	TotalTTC   float64 `json:"total_ttc"`
}

// Total is an aggregation bucket rendered to the front end.
type Total struct {
	Key          string  `json:"key"`
	Count        int     `json:"count"`
	TotalHT      float64 `json:"total_ht"`
	TotalTTC     float64 `json:"total_ttc"`
	FirstDate    string  `json:"first_date,omitempty"`
	LastDate     string  `json:"last_date,omitempty"`
	ActiveMonths int     `json:"active_months,omitempty"`
}

// VendorDetail is the drill-down view for one salesperson.
type VendorDetail struct {
	Vendeur    string  `json:"vendeur"`
	Months     []Total `json:"months"`
	TopClients []Total `json:"top_clients"`
	TotalHT    float64 `json:"total_ht"`
	TotalTTC   float64 `json:"total_ttc"`
	Commandes  int     `json:"commandes"`
}

// FamilyKPI is the per-group rollup for the KPI page.
type FamilyKPI struct {
	Groupe    string  `json:"groupe"`
	Clients   int     `json:"clients"`
	Commandes int     `json:"commandes"`
	TotalHT   float64 `json:"total_ht"`
	TotalTTC  float64 `json:"total_ttc"`
}
