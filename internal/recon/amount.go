package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount normalizes a provider-supplied amount string into a decimal.
// Grouping separators and stray currency symbols are stripped before parsing.
// A value that still fails to parse contributes zero to any sum; a single
// malformed record must never abort an aggregation.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', ' ', '\'', '_':
			return -1
		case '$', '€', '£', '¥':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
