// Package clients holds the client/vendor dimension imported from the
// commercial team's spreadsheet.
package clients

// ClientVendeur maps a client code to its assigned salesperson and
// location. The table is overwritten on each import, no history is kept.
type ClientVendeur struct {
	CodeClient string `json:"code_client"`
	Societe    string `json:"societe"`
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Groupe     string `json:"groupe"`
	CodePostal string `json:"code_postal"`
	Ville      string `json:"ville"`
	Vendeur    string `json:"vendeur"`
}
