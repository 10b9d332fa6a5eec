package normalize

import (
	"math"
	"testing"
)

func TestParseAmountFrenchSeparators(t *testing.T) {
	if got := ParseAmount("1.234,56"); got != 1234.56 {
		t.Fatalf("dual separators: got %v", got)
	}
	if got := ParseAmount("12,5"); got != 12.5 {
		t.Fatalf("comma decimal: got %v", got)
	}
	if got := ParseAmount("1 234,56"); got != 1234.56 {
		t.Fatalf("spaced thousands: got %v", got)
	}
	if got := ParseAmount("1 234,56"); got != 1234.56 {
		t.Fatalf("nbsp thousands: got %v", got)
	}
}

func TestParseAmountPassthrough(t *testing.T) {
	if got := ParseAmount(42.5); got != 42.5 {
		t.Fatalf("float passthrough: got %v", got)
	}
	if got := ParseAmount(7); got != 7 {
		t.Fatalf("int passthrough: got %v", got)
	}
	if got := ParseAmount("1234.56"); got != 1234.56 {
		t.Fatalf("plain dot decimal: got %v", got)
	}
}

func TestParseAmountNeverErrors(t *testing.T) {
	for _, raw := range []any{nil, "abc", "", "12,5,6banana", math.NaN(), math.Inf(1), struct{}{}} {
		if got := ParseAmount(raw); got != 0 {
			t.Fatalf("ParseAmount(%v) = %v, want 0", raw, got)
		}
	}
}

func TestFormatAmountFRRoundTrip(t *testing.T) {
	cases := map[float64]string{
		1234.56: "1234,56",
		12.5:    "12,5",
		0:       "0",
		-42.1:   "-42,1",
		1000:    "1000",
	}
	for v, want := range cases {
		got := FormatAmountFR(v)
		if got != want {
			t.Fatalf("FormatAmountFR(%v) = %q, want %q", v, got, want)
		}
		if back := ParseAmount(got); back != v {
			t.Fatalf("round trip %q: got %v, want %v", got, back, v)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  cl001 "); got != "CL001" {
		t.Fatalf("got %q", got)
	}
}
