// Package metrics stores the daily treasury snapshots and derives the
// net position, comparison, and cumulative views from them.
package metrics

// Daily is one day's snapshot, keyed by date. Revenue, margin, and
// order count are flow quantities for that day; every other field is an
// end-of-day balance. The legacy receivables/payables/cash columns
// predate the detailed breakdowns and still carry the history that was
// never backfilled.
type Daily struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
	Margin     float64 `json:"margin"`

	ReceivablesDue     float64 `json:"receivables_due"`
	ReceivablesCurrent float64 `json:"receivables_current"`
	Receivables        float64 `json:"receivables"`

	PayablesDue     float64 `json:"payables_due"`
	PayablesCurrent float64 `json:"payables_current"`
	Payables        float64 `json:"payables"`

	CashLCL   float64 `json:"cash_lcl"`
	CashCoop  float64 `json:"cash_coop"`
	CashBPMED float64 `json:"cash_bpmed"`
	Cash      float64 `json:"cash"`

	Stock          float64 `json:"stock"`
	FinancialDebts float64 `json:"financial_debts"`
}

// UpsertRequest is the data-entry payload. One row per date, amounts
// default to zero when omitted.
type UpsertRequest struct {
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count" validate:"gte=0"`
	Margin     float64 `json:"margin"`

	ReceivablesDue     float64 `json:"receivables_due"`
	ReceivablesCurrent float64 `json:"receivables_current"`
	Receivables        float64 `json:"receivables"`

	PayablesDue     float64 `json:"payables_due"`
	PayablesCurrent float64 `json:"payables_current"`
	Payables        float64 `json:"payables"`

	CashLCL   float64 `json:"cash_lcl"`
	CashCoop  float64 `json:"cash_coop"`
	CashBPMED float64 `json:"cash_bpmed"`
	Cash      float64 `json:"cash"`

	Stock          float64 `json:"stock"`
	FinancialDebts float64 `json:"financial_debts"`
}

func (r UpsertRequest) toDaily() Daily {
	return Daily{
		Date:               r.Date,
		Revenue:            r.Revenue,
		OrderCount:         r.OrderCount,
		Margin:             r.Margin,
		ReceivablesDue:     r.ReceivablesDue,
		ReceivablesCurrent: r.ReceivablesCurrent,
		Receivables:        r.Receivables,
		PayablesDue:        r.PayablesDue,
		PayablesCurrent:    r.PayablesCurrent,
		Payables:           r.Payables,
		CashLCL:            r.CashLCL,
		CashCoop:           r.CashCoop,
		CashBPMED:          r.CashBPMED,
		Cash:               r.Cash,
		Stock:              r.Stock,
		FinancialDebts:     r.FinancialDebts,
	}
}
