package metrics

// Schema tags say which representation a balance group was read from:
// the detailed breakdown columns or the legacy aggregate column.
const (
	SchemaDetailed = "detailed"
	SchemaLegacy   = "legacy"
)

// BalanceGroup is a resolved balance with its provenance.
type BalanceGroup struct {
	Total  float64 `json:"total"`
	Schema string  `json:"schema"`
}

// Position is the daily net position (BE) breakdown.
type Position struct {
	Date           string       `json:"date"`
	Receivables    BalanceGroup `json:"receivables"`
	Payables       BalanceGroup `json:"payables"`
	Cash           BalanceGroup `json:"cash"`
	Stock          float64      `json:"stock"`
	FinancialDebts float64      `json:"financial_debts"`
	Assets         float64      `json:"assets"`
	Liabilities    float64      `json:"liabilities"`
	BE             float64      `json:"be"`
}

// resolveGroup applies the fallback rule: the detailed sum wins when it
// is non-zero, otherwise the legacy column is used. A genuinely zero
// detailed day therefore reads from legacy; the schema tag makes that
// visible instead of silent.
func resolveGroup(detailed, legacy float64) BalanceGroup {
	if detailed != 0 {
		return BalanceGroup{Total: detailed, Schema: SchemaDetailed}
	}
	return BalanceGroup{Total: legacy, Schema: SchemaLegacy}
}

// ComputePosition derives the net position from one snapshot:
// assets = receivables + cash + stock, liabilities = payables +
// financial debts, BE = assets - liabilities.
func ComputePosition(d Daily) Position {
	receivables := resolveGroup(d.ReceivablesDue+d.ReceivablesCurrent, d.Receivables)
	payables := resolveGroup(d.PayablesDue+d.PayablesCurrent, d.Payables)
	cash := resolveGroup(d.CashLCL+d.CashCoop+d.CashBPMED, d.Cash)

	assets := receivables.Total + cash.Total + d.Stock
	liabilities := payables.Total + d.FinancialDebts

	return Position{
		Date:           d.Date,
		Receivables:    receivables,
		Payables:       payables,
		Cash:           cash,
		Stock:          d.Stock,
		FinancialDebts: d.FinancialDebts,
		Assets:         assets,
		Liabilities:    liabilities,
		BE:             assets - liabilities,
	}
}
