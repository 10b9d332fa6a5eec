package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DayFormat is the canonical date layout used throughout the service.
const DayFormat = "2006-01-02"

// serialEpochOffset is the number of days between the spreadsheet epoch
// (1899-12-30) and the Unix epoch.
const serialEpochOffset = 25569

var (
	isoPrefix  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
)

// ParseDate converts a raw cell value into a canonical YYYY-MM-DD string.
// Accepted inputs: time.Time, ISO-prefixed strings, dd/mm/yyyy or
// dd-mm-yyyy, and spreadsheet serial day numbers. The second return is
// false when the value cannot be read as a date; callers must exclude the
// row rather than substitute a zero date.
func ParseDate(raw any) (string, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.UTC().Format(DayFormat), true
	case string:
		return parseDateString(v)
	case float64:
		return serialToDate(v)
	case float32:
		return serialToDate(float64(v))
	case int:
		return serialToDate(float64(v))
	case int64:
		return serialToDate(float64(v))
	default:
		return "", false
	}
}

func parseDateString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if isoPrefix.MatchString(s) {
		candidate := s[:10]
		if _, err := time.Parse(DayFormat, candidate); err != nil {
			return "", false
		}
		return candidate, true
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return "", false
		}
		return t.Format(DayFormat), true
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(serial)
	}
	return "", false
}

// serialToDate follows the spreadsheet convention: day numbers count from
// 1899-12-30, converted through milliseconds with rounding so fractional
// day times stay on the correct calendar day.
func serialToDate(serial float64) (string, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 || serial > 300000 {
		return "", false
	}
	ms := math.Round((serial - serialEpochOffset) * 86400000)
	t := time.UnixMilli(int64(ms)).UTC()
	if t.Year() < 1900 || t.Year() > 2200 {
		return "", false
	}
	return t.Format(DayFormat), true
}

// MonthOf extracts the YYYY-MM key from a canonical date string.
func MonthOf(day string) string {
	if len(day) < 7 {
		return ""
	}
	return day[:7]
}

// FirstOfMonth collapses a canonical date to the first day of its month.
func FirstOfMonth(day string) string {
	if len(day) < 7 {
		return ""
	}
	return day[:7] + "-01"
}
