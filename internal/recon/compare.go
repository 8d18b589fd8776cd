package recon

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TopChangeLimit caps the ranking of largest absolute changes.
const TopChangeLimit = 5

var oneHundred = decimal.NewFromInt(100)

// Diff computes the change between a current and a previous value. A nil
// previous means there is no comparison basis and yields nil, as does a value
// that did not change. A previous of exactly zero with a positive current is
// reported as 100% growth.
func Diff(current decimal.Decimal, previous *decimal.Decimal) *DifferenceCalculation {
	if previous == nil {
		return nil
	}
	if current.Equal(*previous) {
		return nil
	}
	d := current.Sub(*previous)
	if previous.IsZero() {
		return &DifferenceCalculation{Diff: d, PercentChange: "100.00"}
	}
	pct := d.Div(*previous).Mul(oneHundred).StringFixed(2)
	return &DifferenceCalculation{Diff: d, PercentChange: pct}
}

// Compare diffs two aggregated periods of the same category. A nil previous
// period yields nil cost/count diffs and marks every current worker as new.
//
// A worker present only in the previous period does not appear in the
// listing. That asymmetry matches the produced report, which lists the
// current period's roster.
func Compare(current AggregatedPeriod, previous *AggregatedPeriod) ComparisonResult {
	result := ComparisonResult{
		PerWorkerChanges: make([]WorkerChange, 0, len(current.PerWorker)),
		TopChanges:       []WorkerChange{},
	}

	if previous != nil {
		prevCost := previous.TotalCost
		result.CostDiff = Diff(current.TotalCost, &prevCost)
		prevCount := decimal.NewFromInt(int64(previous.WorkerCount))
		result.CountDiff = Diff(decimal.NewFromInt(int64(current.WorkerCount)), &prevCount)
	}

	for id, amount := range current.PerWorker {
		meta := current.Workers[id]
		change := WorkerChange{
			WorkerID:      id,
			Name:          meta.Name,
			Role:          meta.Role,
			Status:        meta.Status,
			CurrentAmount: amount,
		}
		var prevAmount *decimal.Decimal
		if previous != nil {
			if p, ok := previous.PerWorker[id]; ok {
				prev := p
				prevAmount = &prev
			}
		}
		if prevAmount == nil {
			change.IsNew = true
		} else {
			change.PreviousAmount = prevAmount
			d := amount.Sub(*prevAmount)
			change.Diff = &d
			if !prevAmount.IsZero() {
				pct := d.Div(*prevAmount).Mul(oneHundred).StringFixed(2)
				change.PercentChange = &pct
			} else if !d.IsZero() {
				pct := "100.00"
				change.PercentChange = &pct
			}
		}
		result.PerWorkerChanges = append(result.PerWorkerChanges, change)
	}

	// Deterministic listing order so identical inputs reconcile identically.
	sort.Slice(result.PerWorkerChanges, func(i, j int) bool {
		a, b := result.PerWorkerChanges[i], result.PerWorkerChanges[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.WorkerID < b.WorkerID
	})

	rankTopChanges(&result)
	return result
}

// rankTopChanges tags the workers with the largest absolute defined, non-zero
// diffs, both in the ranked slice and in place in the full listing.
func rankTopChanges(result *ComparisonResult) {
	idx := make([]int, 0, len(result.PerWorkerChanges))
	for i, c := range result.PerWorkerChanges {
		if c.Diff != nil && !c.Diff.IsZero() {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		da := result.PerWorkerChanges[idx[a]].Diff.Abs()
		db := result.PerWorkerChanges[idx[b]].Diff.Abs()
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		return result.PerWorkerChanges[idx[a]].WorkerID < result.PerWorkerChanges[idx[b]].WorkerID
	})
	if len(idx) > TopChangeLimit {
		idx = idx[:TopChangeLimit]
	}
	for _, i := range idx {
		result.PerWorkerChanges[i].IsTopChange = true
		result.TopChanges = append(result.TopChanges, result.PerWorkerChanges[i])
	}
}
