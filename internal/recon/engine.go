package recon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunState tracks the engine lifecycle for one run.
type RunState int

// Engine states. A run moves idle -> fetching -> settled; settled holds
// either a report or the fatal error.
const (
	StateIdle RunState = iota
	StateFetching
	StateSettled
)

// PaymentSource is the provider capability the engine consumes. ListContracts
// failures abort the run; FetchPayments may return accumulated records with a
// *PartialError, which degrades to a warning.
type PaymentSource interface {
	ListContracts(ctx context.Context) ([]Contract, error)
	FetchPayments(ctx context.Context, window PeriodWindow) ([]PaymentRecord, error)
}

// RunParams are the explicit inputs of one reconciliation run. Previous may
// be nil, in which case no diffs are produced and every worker reads as new.
type RunParams struct {
	Current  PeriodWindow
	Previous *PeriodWindow
	Currency string
}

// CategoryReport is the per-category slice of a reconciliation report.
type CategoryReport struct {
	Category      Category         `json:"category"`
	Current       AggregatedPeriod `json:"-"`
	TotalCost     string           `json:"totalCost"`
	WorkerCount   int              `json:"workerCount"`
	PreviousLabel string           `json:"previousLabel,omitempty"`
	Comparison    ComparisonResult `json:"comparison"`
}

// Report is the externally visible outcome of a run.
type Report struct {
	RunID             string           `json:"runId"`
	Seq               uint64           `json:"-"`
	CurrentLabel      string           `json:"currentLabel"`
	PreviousLabel     string           `json:"previousLabel,omitempty"`
	Currency          string           `json:"currency"`
	Categories        []CategoryReport `json:"categories"`
	UnclassifiedCount int              `json:"unclassifiedCount"`
	Warnings          []string         `json:"warnings,omitempty"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

// RunMetrics receives engine instrumentation; wired to prometheus in the
// observability package.
type RunMetrics interface {
	RunCompleted(outcome string, elapsed time.Duration)
}

// Engine orchestrates a reconciliation run: one contract fetch and two
// concurrent payment-window fetches, then per-category aggregation and
// comparison. Runs carry a monotonically increasing sequence; only the latest
// run's result becomes externally visible, so a rerun supersedes any run
// still in flight.
type Engine struct {
	source  PaymentSource
	logger  *slog.Logger
	metrics RunMetrics
	now     func() time.Time

	seq atomic.Uint64

	mu        sync.Mutex
	state     RunState
	published *Report
	lastErr   error
	latestSeq uint64
}

// NewEngine constructs an engine around a payment source.
func NewEngine(source PaymentSource, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, logger: logger, now: time.Now}
}

// WithMetrics attaches run instrumentation.
func (e *Engine) WithMetrics(m RunMetrics) *Engine {
	e.metrics = m
	return e
}

// WithClock overrides the clock for deterministic tests.
func (e *Engine) WithClock(clock func() time.Time) {
	if clock != nil {
		e.now = clock
	}
}

// State reports the current lifecycle state.
func (e *Engine) State() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Latest returns the most recently published report, or nil.
func (e *Engine) Latest() *Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.published
}

// LastError returns the fatal error of the latest settled run, if any.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Run executes one reconciliation. The contract fetch and both payment-window
// fetches run concurrently and the engine joins on all of them before
// aggregating. The returned report is always handed to the caller; it is
// published to Latest only when no newer run has started since.
func (e *Engine) Run(ctx context.Context, params RunParams) (*Report, error) {
	if e == nil || e.source == nil {
		return nil, fmt.Errorf("%w: engine not initialised", ErrInputInvalid)
	}
	if params.Current.Start.After(params.Current.End) {
		return nil, fmt.Errorf("%w: current window start after end", ErrInputInvalid)
	}
	if params.Previous != nil && params.Previous.Start.After(params.Previous.End) {
		return nil, fmt.Errorf("%w: previous window start after end", ErrInputInvalid)
	}
	currency := params.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	seq := e.seq.Add(1)
	runID := uuid.NewString()
	logger := e.logger.With(slog.String("run_id", runID), slog.Uint64("seq", seq))
	started := e.now()

	e.mu.Lock()
	e.state = StateFetching
	e.latestSeq = seq
	e.mu.Unlock()

	var (
		contracts    []Contract
		currentPays  []PaymentRecord
		previousPays []PaymentRecord
		currentWarn  error
		previousWarn error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = e.source.ListContracts(gctx)
		if err != nil {
			return fmt.Errorf("list contracts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		currentPays, currentWarn = e.fetchWindow(gctx, logger, params.Current)
		return nil
	})
	if params.Previous != nil {
		prev := *params.Previous
		g.Go(func() error {
			previousPays, previousWarn = e.fetchWindow(gctx, logger, prev)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.settle(seq, nil, err)
		e.observe("error", started)
		logger.Error("reconciliation failed", slog.Any("error", err))
		return nil, err
	}

	partition := PartitionContracts(contracts)
	report := &Report{
		RunID:             runID,
		Seq:               seq,
		CurrentLabel:      params.Current.Label,
		Currency:          currency,
		UnclassifiedCount: len(partition.Unclassified),
		GeneratedAt:       e.now(),
	}
	if params.Previous != nil {
		report.PreviousLabel = params.Previous.Label
	}
	if currentWarn != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("period %q incomplete: %v", params.Current.Label, currentWarn))
	}
	if previousWarn != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("period %q incomplete: %v", params.Previous.Label, previousWarn))
	}

	for _, cat := range Categories {
		bucket := partition.Buckets[cat]
		current := Aggregate(bucket, currentPays, currency)
		var previous *AggregatedPeriod
		if params.Previous != nil {
			prev := Aggregate(bucket, previousPays, currency)
			previous = &prev
		}
		cr := CategoryReport{
			Category:    cat,
			Current:     current,
			TotalCost:   current.TotalCost.StringFixed(2),
			WorkerCount: current.WorkerCount,
			Comparison:  Compare(current, previous),
		}
		if params.Previous != nil {
			cr.PreviousLabel = params.Previous.Label
		}
		report.Categories = append(report.Categories, cr)
	}

	superseded := !e.settle(seq, report, nil)
	if superseded {
		logger.Info("run superseded, result discarded")
		e.observe("superseded", started)
		return report, nil
	}
	e.observe("ok", started)
	logger.Info("reconciliation settled",
		slog.Int("contracts", len(contracts)),
		slog.Int("unclassified", report.UnclassifiedCount),
		slog.Int("warnings", len(report.Warnings)))
	return report, nil
}

// fetchWindow retrieves one payment window, downgrading a partial pagination
// failure to a warning. Anything other than a PartialError is still treated
// as partial data: the reconciliation completes on whatever was retrieved.
func (e *Engine) fetchWindow(ctx context.Context, logger *slog.Logger, window PeriodWindow) ([]PaymentRecord, error) {
	records, err := e.source.FetchPayments(ctx, window)
	if err == nil {
		return records, nil
	}
	var partial *PartialError
	if !errors.As(err, &partial) {
		err = &PartialError{Err: err}
	}
	logger.Warn("payment window incomplete",
		slog.String("window", window.Label),
		slog.Any("error", err))
	return records, err
}

// settle publishes the run outcome unless a newer run has started. Returns
// true when this run's result became the visible one.
func (e *Engine) settle(seq uint64, report *Report, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq < e.latestSeq {
		return false
	}
	e.state = StateSettled
	e.published = report
	e.lastErr = err
	return true
}

func (e *Engine) observe(outcome string, started time.Time) {
	if e.metrics != nil {
		e.metrics.RunCompleted(outcome, e.now().Sub(started))
	}
}
