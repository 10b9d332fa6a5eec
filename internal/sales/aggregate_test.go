package sales

import "testing"

func fixtureInvoices() []Invoice {
	return []Invoice{
		{ID: 1, DateFacture: "2024-01-10", CodeClient: "cl001", Client: "Boulangerie Nord", Vendeur: "Karim", Ville: "Lille", TotalHT: 100, TotalTTC: 120},
		{ID: 2, DateFacture: "2024-01-20", CodeClient: "CL001 ", Client: "Boulangerie Nord", Vendeur: "Karim", Ville: "Lille", TotalHT: 50, TotalTTC: 60},
		{ID: 3, DateFacture: "2024-02-05", CodeClient: "CL002", Client: "Pâtisserie Sud", Vendeur: "Nadia", Ville: "Marseille", TotalHT: 200, TotalTTC: 240},
		{ID: 4, DateFacture: "2024-03-01", CodeClient: "CL001", Client: "Boulangerie Nord", Vendeur: "Karim", Ville: "Lille", TotalHT: 30, TotalTTC: 36},
		{ID: 5, DateFacture: "2024-03-15", CodeClient: "", Client: "Sans Code", Vendeur: "Nadia", Ville: "Nice", TotalHT: 10, TotalTTC: 12},
	}
}

func TestAggregateByMonth(t *testing.T) {
	agg := NewAggregator(ByMonth)
	agg.AddAll(fixtureInvoices())
	totals := agg.Totals()

	if len(totals) != 3 {
		t.Fatalf("expected 3 months, got %d", len(totals))
	}
	jan := totals[0]
	if jan.Key != "2024-01" || jan.Count != 2 || jan.TotalHT != 150 {
		t.Fatalf("january bucket wrong: %+v", jan)
	}
	mar := totals[2]
	if mar.Key != "2024-03" || mar.Count != 2 || mar.TotalHT != 40 {
		t.Fatalf("march bucket wrong: %+v", mar)
	}
}

func TestAggregateByClientNormalizesCode(t *testing.T) {
	agg := NewAggregator(ByClient)
	agg.AddAll(fixtureInvoices())
	totals := agg.Totals()

	if len(totals) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(totals))
	}
	var cl001 *Total
	for i := range totals {
		if totals[i].Key == "CL001" {
			cl001 = &totals[i]
		}
	}
	if cl001 == nil {
		t.Fatalf("CL001 missing: %+v", totals)
	}
	if cl001.Count != 3 || cl001.TotalHT != 180 {
		t.Fatalf("CL001 bucket wrong: %+v", cl001)
	}
	if cl001.FirstDate != "2024-01-10" || cl001.LastDate != "2024-03-01" {
		t.Fatalf("first/last wrong: %+v", cl001)
	}
	if cl001.ActiveMonths != 2 {
		t.Fatalf("active months wrong: %+v", cl001)
	}
}

func TestAggregateClientFallsBackToName(t *testing.T) {
	agg := NewAggregator(ByClient)
	agg.AddAll(fixtureInvoices())
	found := false
	for _, tot := range agg.Totals() {
		if tot.Key == "SANS CODE" {
			found = true
			if tot.TotalHT != 10 {
				t.Fatalf("fallback bucket wrong: %+v", tot)
			}
		}
	}
	if !found {
		t.Fatal("row without code was not keyed by client name")
	}
}

func TestAggregateDropsEmptyKey(t *testing.T) {
	agg := NewAggregator(ByClient)
	agg.Add(Invoice{DateFacture: "2024-01-01", TotalHT: 99})
	if len(agg.Totals()) != 0 {
		t.Fatal("row with no client identity must be excluded")
	}
}

func TestTotalsByAmount(t *testing.T) {
	agg := NewAggregator(ByCity)
	agg.AddAll(fixtureInvoices())
	totals := agg.TotalsByAmount()
	if totals[0].Key != "MARSEILLE" {
		t.Fatalf("expected Marseille first, got %+v", totals[0])
	}
}
