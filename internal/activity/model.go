// Package activity builds the client activity and churn reports: which
// clients ordered in the target month and the two months before it.
package activity

// Flag values shown in the activity grid.
const (
	FlagPositif = "Positif"
	FlagNegatif = "Négatif"
)

// ClientActivity is one line of the activity grid.
type ClientActivity struct {
	CodeClient      string  `json:"code_client"`
	Client          string  `json:"client"`
	Vendeur         string  `json:"vendeur"`
	Ville           string  `json:"ville"`
	TotalHT         float64 `json:"total_ht"`
	Commandes       int     `json:"commandes"`
	PremierMois     string  `json:"premier_mois"`
	MoisActifs      int     `json:"mois_actifs"`
	MoyenneCommande float64 `json:"moyenne_commande"`
	MoyenneParMois  float64 `json:"moyenne_par_mois"`
	// Activity flags for the target month and its two predecessors.
	FlagM  string `json:"flag_m"`
	FlagM1 string `json:"flag_m1"`
	FlagM2 string `json:"flag_m2"`
}

// Report is the activity payload for one target month.
type Report struct {
	Mois    string           `json:"mois"`
	Clients []ClientActivity `json:"clients"`
}
