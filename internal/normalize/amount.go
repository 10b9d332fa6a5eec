// Package normalize converts heterogeneous spreadsheet values into
// canonical amounts, dates, and column names.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a raw cell value into a float64. French formatted
// strings are supported: when both separators are present the dot is a
// thousands separator ("1.234,56" reads as 1234.56), a lone comma is the
// decimal mark ("12,5" reads as 12.5). Unparseable input yields 0, never
// an error, so a bad cell cannot abort an import.
func ParseAmount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

func parseAmountString(s string) float64 {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ' ', ' ':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0
	}
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(v)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmountFR renders a float with a decimal comma and no grouping
// separators, so an imported amount exports back to the exact string the
// spreadsheet carried.
func FormatAmountFR(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}

// NormalizeCode canonicalises a client code for grouping. Codes arrive
// with inconsistent case and padding across spreadsheets.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
