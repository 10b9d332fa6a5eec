package sales

import (
	"sort"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
)

// bucket accumulates one group while folding invoice rows.
type bucket struct {
	count    int
	totalHT  float64
	totalTTC float64
	first    string
	last     string
	months   map[string]struct{}
}

func (b *bucket) add(inv Invoice) {
	b.count++
	b.totalHT += inv.TotalHT
	b.totalTTC += inv.TotalTTC
	if b.first == "" || inv.DateFacture < b.first {
		b.first = inv.DateFacture
	}
	if inv.DateFacture > b.last {
		b.last = inv.DateFacture
	}
	if m := normalize.MonthOf(inv.DateFacture); m != "" {
		if b.months == nil {
			b.months = make(map[string]struct{})
		}
		b.months[m] = struct{}{}
	}
}

// Aggregator folds invoice rows into keyed buckets. Feed it pages from
// the row stream, then Totals for the sorted result.
type Aggregator struct {
	key     func(Invoice) string
	buckets map[string]*bucket
}

// NewAggregator builds an aggregator over an arbitrary grouping key.
func NewAggregator(key func(Invoice) string) *Aggregator {
	return &Aggregator{key: key, buckets: make(map[string]*bucket)}
}

// Add folds one row. Rows keyed to the empty string are dropped.
func (a *Aggregator) Add(inv Invoice) {
	k := a.key(inv)
	if k == "" {
		return
	}
	b := a.buckets[k]
	if b == nil {
		b = &bucket{}
		a.buckets[k] = b
	}
	b.add(inv)
}

// AddAll folds a page of rows.
func (a *Aggregator) AddAll(page []Invoice) {
	for _, inv := range page {
		a.Add(inv)
	}
}

// Totals returns the buckets sorted by key.
func (a *Aggregator) Totals() []Total {
	out := make([]Total, 0, len(a.buckets))
	for k, b := range a.buckets {
		out = append(out, Total{
			Key:          k,
			Count:        b.count,
			TotalHT:      b.totalHT,
			TotalTTC:     b.totalTTC,
			FirstDate:    b.first,
			LastDate:     b.last,
			ActiveMonths: len(b.months),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TotalsByAmount returns the buckets sorted by descending total HT.
func (a *Aggregator) TotalsByAmount() []Total {
	out := a.Totals()
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalHT > out[j].TotalHT })
	return out
}

// Grouping keys shared by the report endpoints.

// ByMonth groups on the YYYY-MM of the invoice date.
func ByMonth(inv Invoice) string { return normalize.MonthOf(inv.DateFacture) }

// ByVendor groups on the trimmed salesperson name.
func ByVendor(inv Invoice) string { return normalize.NormalizeCode(inv.Vendeur) }

// ByCity groups on the city in upper case.
func ByCity(inv Invoice) string { return normalize.NormalizeCode(inv.Ville) }

// ByClient groups on the normalized client code, falling back to the
// normalized client name when the code column is blank. Two codes that
// differ only by case merge; that matches how the spreadsheets are
// actually keyed.
func ByClient(inv Invoice) string {
	if code := normalize.NormalizeCode(inv.CodeClient); code != "" {
		return code
	}
	return normalize.NormalizeCode(inv.Client)
}
