package provider

import (
	"context"
	"log/slog"

	"github.com/payrecon/payrecon/internal/recon"
)

// FetchPayments drives the payments list endpoint to exhaustion for one
// period window: pages of a fixed size at increasing offsets until a short or
// empty page. Provider order is preserved and no offset is requested twice.
//
// On a page failure the fetch aborts and returns the records accumulated so
// far together with a *recon.PartialError; the caller reconciles on partial
// data with a visible warning instead of failing the run.
func (c *Client) FetchPayments(ctx context.Context, window recon.PeriodWindow) ([]recon.PaymentRecord, error) {
	var all []recon.PaymentRecord
	for offset := 0; ; offset += c.pageSize {
		page, err := c.ListPayments(ctx, window, offset, c.pageSize)
		if err != nil {
			c.logger.Warn("payment page fetch failed",
				slog.String("window", window.Label),
				slog.Int("offset", offset),
				slog.Any("error", err))
			return all, &recon.PartialError{Offset: offset, Err: err}
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}
