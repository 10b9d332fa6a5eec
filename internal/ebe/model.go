// Package ebe stores the monthly operating-surplus inputs and derives
// EBE and margin from them on every read.
package ebe

// Monthly is one month's stored inputs, keyed by the first of month.
type Monthly struct {
	Month           string  `json:"month"`
	Turnover        float64 `json:"turnover"`
	Purchases       float64 `json:"purchases"`
	ExternalCharges float64 `json:"external_charges"`
	Salaries        float64 `json:"salaries"`
	ProductionTaxes float64 `json:"production_taxes"`
}

// View is a Monthly plus the derived figures. EBE and margin are never
// stored; they are recomputed here so the two can never drift apart.
type View struct {
	Monthly
	EBE           float64 `json:"ebe"`
	MarginPercent float64 `json:"margin_percent"`
	Color         string  `json:"color"`
}

// Margin color bands used by the dashboard cards.
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorYellow = "yellow"
)

// Derive computes EBE, margin percent, and the color band.
func Derive(m Monthly) View {
	ebe := m.Turnover - (m.Purchases + m.ExternalCharges + m.Salaries + m.ProductionTaxes)
	var margin float64
	if m.Turnover != 0 {
		margin = ebe / m.Turnover * 100
	}
	return View{Monthly: m, EBE: ebe, MarginPercent: margin, Color: marginColor(margin)}
}

// marginColor: a healthy margin sits between 5 and 15 percent. Below is
// red; above usually means costs were entered incomplete, flagged yellow.
func marginColor(margin float64) string {
	switch {
	case margin < 5:
		return ColorRed
	case margin > 15:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// UpsertRequest is the data-entry payload.
type UpsertRequest struct {
	Month           string  `json:"month" validate:"required,datetime=2006-01-02"`
	Turnover        float64 `json:"turnover" validate:"gte=0"`
	Purchases       float64 `json:"purchases" validate:"gte=0"`
	ExternalCharges float64 `json:"external_charges" validate:"gte=0"`
	Salaries        float64 `json:"salaries" validate:"gte=0"`
	ProductionTaxes float64 `json:"production_taxes" validate:"gte=0"`
}
