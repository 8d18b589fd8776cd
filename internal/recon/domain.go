// Package recon implements the payroll reconciliation and period-comparison
// engine: classification of contracts, per-period aggregation of payment
// records and the diff between two reporting periods.
package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a worker classification bucket.
type Category string

// Worker classification buckets. Contract types outside the known enum land
// in CategoryUnclassified so totals stay auditable.
const (
	CategoryEOR          Category = "EOR"
	CategoryPEO          Category = "PEO"
	CategoryContractor   Category = "CONTRACTOR"
	CategoryUnclassified Category = "UNCLASSIFIED"
)

// Categories lists the reportable buckets in presentation order.
var Categories = []Category{CategoryEOR, CategoryPEO, CategoryContractor}

// Contract is a worker engagement record as returned by the provider.
// Immutable for the duration of a reconciliation run.
type Contract struct {
	ID         string
	Name       string
	WorkerName string
	Role       string
	Status     string
	Type       string
}

// PaymentRecord is a single monetary line item tied to a contract. ContractID
// is a weak reference; it may point outside the current contract roster.
type PaymentRecord struct {
	ContractID   string
	ContractName string
	Amount       string
	Currency     string
	Status       string
	OccurredAt   time.Time
}

// Payslip carries the worker-country signal used by the semi-monthly EOR
// cycle rule.
type Payslip struct {
	ContractID    string
	WorkerCountry string
}

// PeriodWindow is a half-open reporting interval with a display label.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
	Label string
}

// WorkerMeta is the resolved display identity for a worker within a period.
type WorkerMeta struct {
	Name   string
	Role   string
	Status string
}

// AggregatedPeriod is the per-category result of summing one period's
// payments. TotalCost always equals the sum of PerWorker values and
// WorkerCount equals len(PerWorker); zero-amount workers are excluded.
type AggregatedPeriod struct {
	TotalCost   decimal.Decimal
	WorkerCount int
	PerWorker   map[string]decimal.Decimal
	Workers     map[string]WorkerMeta
}

// DifferenceCalculation describes a change between two comparable values.
// PercentChange carries exactly two fraction digits.
type DifferenceCalculation struct {
	Diff          decimal.Decimal `json:"diff"`
	PercentChange string          `json:"percentChange"`
}

// WorkerChange is one worker's movement between the compared periods. Diff
// and PercentChange are nil for workers without a previous-period amount;
// those are marked IsNew instead.
type WorkerChange struct {
	WorkerID       string           `json:"workerId"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	Status         string           `json:"status"`
	CurrentAmount  decimal.Decimal  `json:"currentAmount"`
	PreviousAmount *decimal.Decimal `json:"previousAmount,omitempty"`
	Diff           *decimal.Decimal `json:"diff,omitempty"`
	PercentChange  *string          `json:"percentChange,omitempty"`
	IsNew          bool             `json:"isNew"`
	IsTopChange    bool             `json:"isTopChange"`
}

// ComparisonResult holds the category-level diff between two periods.
// CostDiff and CountDiff are nil when there is no comparison basis or no
// change.
type ComparisonResult struct {
	CostDiff         *DifferenceCalculation `json:"costDiff,omitempty"`
	CountDiff        *DifferenceCalculation `json:"countDiff,omitempty"`
	PerWorkerChanges []WorkerChange         `json:"perWorkerChanges"`
	TopChanges       []WorkerChange         `json:"topChanges"`
}
