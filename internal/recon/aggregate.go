package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when a payment record carries no currency code.
const DefaultCurrency = "USD"

// Aggregate joins one category's contracts with one period's payment records
// and sums amounts per worker. Payments outside the contract scope or in a
// currency other than the reporting currency are excluded from totals, not
// converted. Workers whose summed amount is exactly zero are dropped from
// PerWorker and WorkerCount.
func Aggregate(contracts []Contract, payments []PaymentRecord, currency string) AggregatedPeriod {
	if currency == "" {
		currency = DefaultCurrency
	}

	scope := make(map[string]Contract, len(contracts))
	for _, c := range contracts {
		scope[c.ID] = c
	}

	sums := make(map[string]decimal.Decimal)
	paymentNames := make(map[string]string)
	for _, p := range payments {
		if _, ok := scope[p.ContractID]; !ok {
			continue
		}
		ccy := p.Currency
		if ccy == "" {
			ccy = DefaultCurrency
		}
		if !strings.EqualFold(ccy, currency) {
			continue
		}
		sums[p.ContractID] = sums[p.ContractID].Add(ParseAmount(p.Amount))
		if _, seen := paymentNames[p.ContractID]; !seen && p.ContractName != "" {
			paymentNames[p.ContractID] = p.ContractName
		}
	}

	out := AggregatedPeriod{
		PerWorker: make(map[string]decimal.Decimal, len(sums)),
		Workers:   make(map[string]WorkerMeta, len(sums)),
	}
	for id, total := range sums {
		if total.IsZero() {
			continue
		}
		c := scope[id]
		out.PerWorker[id] = total
		out.Workers[id] = WorkerMeta{
			Name:   resolveName(c, paymentNames[id]),
			Role:   c.Role,
			Status: c.Status,
		}
		out.TotalCost = out.TotalCost.Add(total)
	}
	out.WorkerCount = len(out.PerWorker)
	return out
}

// resolveName picks a display name: worker profile, then contract title, then
// the name embedded in the payment record, then "N/A".
func resolveName(c Contract, paymentName string) string {
	if c.WorkerName != "" {
		return c.WorkerName
	}
	if c.Name != "" {
		return c.Name
	}
	if paymentName != "" {
		return paymentName
	}
	return "N/A"
}
