package metrics

// Delta sign conventions. For most metrics growth is good; for what the
// company owes, growth is bad and the front end inverts the colors.
const (
	ConventionMoreIsGood = "good"
	ConventionMoreIsBad  = "bad"
)

// MetricDelta is one line of the comparison view: both values and the
// signed difference A - B.
type MetricDelta struct {
	Metric     string  `json:"metric"`
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	Delta      float64 `json:"delta"`
	Convention string  `json:"convention"`
}

// Comparison is the two-date view.
type Comparison struct {
	DateA  string        `json:"date_a"`
	DateB  string        `json:"date_b"`
	Deltas []MetricDelta `json:"deltas"`
}

// Compare builds the metric deltas between two snapshots. Balance
// groups go through the same detailed/legacy resolution as the position
// view so both dates compare on resolved totals.
func Compare(a, b Daily) Comparison {
	posA := ComputePosition(a)
	posB := ComputePosition(b)

	rows := []struct {
		name       string
		a, b       float64
		convention string
	}{
		{"revenue", a.Revenue, b.Revenue, ConventionMoreIsGood},
		{"margin", a.Margin, b.Margin, ConventionMoreIsGood},
		{"order_count", float64(a.OrderCount), float64(b.OrderCount), ConventionMoreIsGood},
		{"receivables", posA.Receivables.Total, posB.Receivables.Total, ConventionMoreIsGood},
		{"cash", posA.Cash.Total, posB.Cash.Total, ConventionMoreIsGood},
		{"stock", a.Stock, b.Stock, ConventionMoreIsGood},
		{"payables", posA.Payables.Total, posB.Payables.Total, ConventionMoreIsBad},
		{"financial_debts", a.FinancialDebts, b.FinancialDebts, ConventionMoreIsBad},
		{"be", posA.BE, posB.BE, ConventionMoreIsGood},
	}

	out := Comparison{DateA: a.Date, DateB: b.Date}
	for _, row := range rows {
		out.Deltas = append(out.Deltas, MetricDelta{
			Metric:     row.name,
			A:          row.a,
			B:          row.b,
			Delta:      row.a - row.b,
			Convention: row.convention,
		})
	}
	return out
}

// Cumulative is the range view: flow metrics summed over every day,
// balance metrics taken from the last day only. Summing balances across
// days would double-count them.
type Cumulative struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Days       int     `json:"days"`
	Revenue    float64 `json:"revenue"`
	Margin     float64 `json:"margin"`
	OrderCount int     `json:"order_count"`
	// Snapshot of the newest day in range.
	Last Daily `json:"last"`
	// Position derived from that snapshot.
	Position Position `json:"position"`
}

// Accumulate folds a date-sorted range of snapshots.
func Accumulate(days []Daily) Cumulative {
	out := Cumulative{Days: len(days)}
	if len(days) == 0 {
		return out
	}
	for _, d := range days {
		out.Revenue += d.Revenue
		out.Margin += d.Margin
		out.OrderCount += d.OrderCount
	}
	out.From = days[0].Date
	out.To = days[len(days)-1].Date
	out.Last = days[len(days)-1]
	out.Position = ComputePosition(out.Last)
	return out
}
