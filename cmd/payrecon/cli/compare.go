// Package cli provides one-shot helpers for running a comparison from the
// command line without the HTTP surface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/payrecon/payrecon/internal/recon"
)

// CompareCLI runs a single reconciliation and prints the report as JSON.
type CompareCLI struct {
	engine *recon.Engine
	out    io.Writer
}

// NewCompareCLI constructs the helper around an engine.
func NewCompareCLI(engine *recon.Engine, out io.Writer) *CompareCLI {
	return &CompareCLI{engine: engine, out: out}
}

// Run compares the given month against the preceding one, or against an
// explicit previous month when prevYear/prevMonth are non-zero.
func (c *CompareCLI) Run(ctx context.Context, year int, month time.Month, prevYear int, prevMonth time.Month, currency string) error {
	if c == nil || c.engine == nil {
		return errors.New("compare cli: engine not configured")
	}
	if year == 0 || month == 0 {
		return errors.New("compare cli: year and month are required")
	}
	if prevYear == 0 || prevMonth == 0 {
		prevYear, prevMonth = recon.PreviousMonth(year, month)
	}
	previous := recon.MonthWindow(prevYear, prevMonth)

	report, err := c.engine.Run(ctx, recon.RunParams{
		Current:  recon.MonthWindow(year, month),
		Previous: &previous,
		Currency: currency,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
