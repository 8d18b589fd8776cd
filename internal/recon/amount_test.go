package recon

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "1234.56", want: "1234.56"},
		{name: "grouping commas", raw: "12,345.67", want: "12345.67"},
		{name: "currency symbol", raw: "$1,000", want: "1000"},
		{name: "spaces", raw: " 2 500.00 ", want: "2500"},
		{name: "negative", raw: "-1,250.75", want: "-1250.75"},
		{name: "zero", raw: "0", want: "0"},
		{name: "non numeric", raw: "n/a", want: "0"},
		{name: "empty", raw: "", want: "0"},
		{name: "symbol only", raw: "$", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.raw)
			want, err := decimal.NewFromString(tc.want)
			if err != nil {
				t.Fatalf("bad fixture %q: %v", tc.want, err)
			}
			if !got.Equal(want) {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tc.raw, got, want)
			}
		})
	}
}

func TestParseAmountNeverPanicsOnGarbage(t *testing.T) {
	for _, raw := range []string{"--", "1.2.3", "abc123", "€€"} {
		if got := ParseAmount(raw); !got.IsZero() {
			t.Fatalf("ParseAmount(%q) = %s, want 0", raw, got)
		}
	}
}
