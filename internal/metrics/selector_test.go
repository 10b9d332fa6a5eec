package metrics

import "testing"

func deltaByName(t *testing.T, cmp Comparison, name string) MetricDelta {
	t.Helper()
	for _, d := range cmp.Deltas {
		if d.Metric == name {
			return d
		}
	}
	t.Fatalf("metric %s missing from comparison", name)
	return MetricDelta{}
}

func TestCompareSignConventions(t *testing.T) {
	a := Daily{Date: "2024-03-15", Revenue: 1000, PayablesDue: 80}
	b := Daily{Date: "2024-02-15", Revenue: 970, PayablesDue: 50}

	cmp := Compare(a, b)

	payables := deltaByName(t, cmp, "payables")
	if payables.Delta != 30 {
		t.Fatalf("payables delta = %v, want +30", payables.Delta)
	}
	if payables.Convention != ConventionMoreIsBad {
		t.Fatalf("payables must carry the inverted convention")
	}

	revenue := deltaByName(t, cmp, "revenue")
	if revenue.Delta != 30 || revenue.Convention != ConventionMoreIsGood {
		t.Fatalf("revenue delta wrong: %+v", revenue)
	}

	debts := deltaByName(t, cmp, "financial_debts")
	if debts.Convention != ConventionMoreIsBad {
		t.Fatalf("financial debts must carry the inverted convention")
	}
}

func TestCompareUsesResolvedBalances(t *testing.T) {
	a := Daily{Date: "2024-03-15", ReceivablesDue: 100, ReceivablesCurrent: 50}
	b := Daily{Date: "2022-01-01", Receivables: 90}

	cmp := Compare(a, b)
	rec := deltaByName(t, cmp, "receivables")
	if rec.A != 150 || rec.B != 90 || rec.Delta != 60 {
		t.Fatalf("resolved receivables wrong: %+v", rec)
	}
}

func TestAccumulateSumsFlowsKeepsLastSnapshot(t *testing.T) {
	days := []Daily{
		{Date: "2024-03-01", Revenue: 100, Margin: 10, OrderCount: 2, ReceivablesDue: 500},
		{Date: "2024-03-02", Revenue: 200, Margin: 20, OrderCount: 3, ReceivablesDue: 700},
		{Date: "2024-03-03", Revenue: 300, Margin: 30, OrderCount: 1, ReceivablesDue: 100},
	}
	cum := Accumulate(days)

	if cum.Revenue != 600 || cum.Margin != 60 || cum.OrderCount != 6 {
		t.Fatalf("flow sums wrong: %+v", cum)
	}
	if cum.Last.ReceivablesDue != 100 {
		t.Fatalf("snapshot must be the last day's value, got %v", cum.Last.ReceivablesDue)
	}
	if cum.From != "2024-03-01" || cum.To != "2024-03-03" || cum.Days != 3 {
		t.Fatalf("range metadata wrong: %+v", cum)
	}
}

func TestAccumulateEmpty(t *testing.T) {
	cum := Accumulate(nil)
	if cum.Days != 0 || cum.Revenue != 0 {
		t.Fatalf("empty accumulate wrong: %+v", cum)
	}
}
