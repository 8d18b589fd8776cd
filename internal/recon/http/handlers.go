// Package reconhttp exposes the reconciliation engine over HTTP.
package reconhttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/payrecon/payrecon/internal/platform/httpx"
	"github.com/payrecon/payrecon/internal/recon"
)

// Handler serves period comparison reports.
type Handler struct {
	logger          *slog.Logger
	engine          *recon.Engine
	validate        *validator.Validate
	defaultCurrency string
}

// NewHandler constructs the reconciliation HTTP handler.
func NewHandler(logger *slog.Logger, engine *recon.Engine, defaultCurrency string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultCurrency == "" {
		defaultCurrency = recon.DefaultCurrency
	}
	return &Handler{
		logger:          logger,
		engine:          engine,
		validate:        validator.New(),
		defaultCurrency: defaultCurrency,
	}
}

// Routes mounts the handler endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/compare", h.Compare)
	r.Get("/compare/latest", h.Latest)
	return r
}

// compareQuery carries the validated run parameters. PrevYear/PrevMonth
// default to the calendar month before the selected one.
type compareQuery struct {
	Year      int    `validate:"required,gte=2000,lte=2100"`
	Month     int    `validate:"required,gte=1,lte=12"`
	PrevYear  int    `validate:"omitempty,gte=2000,lte=2100"`
	PrevMonth int    `validate:"omitempty,gte=1,lte=12"`
	Currency  string `validate:"omitempty,iso4217"`
}

// Compare runs a reconciliation for the selected month against the previous
// one and returns the full report.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
		return
	}

	current := recon.MonthWindow(query.Year, time.Month(query.Month))
	prevYear, prevMonth := query.PrevYear, time.Month(query.PrevMonth)
	if query.PrevYear == 0 || query.PrevMonth == 0 {
		prevYear, prevMonth = recon.PreviousMonth(query.Year, time.Month(query.Month))
	}
	previous := recon.MonthWindow(prevYear, prevMonth)

	currency := query.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}

	report, err := h.engine.Run(r.Context(), recon.RunParams{
		Current:  current,
		Previous: &previous,
		Currency: currency,
	})
	if err != nil {
		h.logger.Error("compare failed",
			slog.String("period", current.Label),
			slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// Latest returns the most recently settled report without triggering a run.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	report := h.engine.Latest()
	if report == nil {
		httpx.Problem(w, http.StatusNotFound, "No Report", "no reconciliation has settled yet")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) parseQuery(r *http.Request) (compareQuery, error) {
	q := compareQuery{
		Year:      intParam(r, "year"),
		Month:     intParam(r, "month"),
		PrevYear:  intParam(r, "prev_year"),
		PrevMonth: intParam(r, "prev_month"),
		Currency:  r.URL.Query().Get("currency"),
	}
	if err := h.validate.Struct(q); err != nil {
		return compareQuery{}, fmt.Errorf("invalid compare parameters: %w", err)
	}
	// A half-selected previous period is ambiguous; require both or neither.
	if (q.PrevYear == 0) != (q.PrevMonth == 0) {
		return compareQuery{}, fmt.Errorf("prev_year and prev_month must be given together")
	}
	return q, nil
}

func intParam(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}
