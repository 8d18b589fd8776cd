package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/payrecon/payrecon/internal/recon"
)

// DefaultPageSize is the uniform page size for list endpoints.
const DefaultPageSize = 50

// defaultPageTimeout bounds a single page request; a timeout is treated the
// same as any other page failure.
const defaultPageTimeout = 15 * time.Second

// Client wraps interactions with the payroll provider REST API.
type Client struct {
	baseURL     string
	apiKey      string
	pageSize    int
	pageTimeout time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
	onPage      func(resource string)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPageSize overrides the pagination page size.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithPageTimeout overrides the per-page request deadline.
func WithPageTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pageTimeout = d
		}
	}
}

// WithPageObserver installs a callback invoked once per fetched page, keyed
// by resource path.
func WithPageObserver(fn func(resource string)) Option {
	return func(c *Client) {
		c.onPage = fn
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a provider client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		pageSize:    DefaultPageSize,
		pageTimeout: defaultPageTimeout,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type contractDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Type   string `json:"type"`
	Worker struct {
		FullName string `json:"full_name"`
	} `json:"worker"`
	JobTitle string `json:"job_title"`
}

type paymentDTO struct {
	ContractID   string `json:"contract_id"`
	ContractName string `json:"contract_name"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	PaymentDate  string `json:"payment_date"`
}

type payslipDTO struct {
	ContractID string `json:"contract_id"`
	Worker     struct {
		Country string `json:"country"`
	} `json:"worker"`
}

// ListContracts retrieves the full contract roster. Unlike payment windows,
// any page failure here aborts the whole reconciliation; classification has
// no basis without the roster.
func (c *Client) ListContracts(ctx context.Context) ([]recon.Contract, error) {
	var all []recon.Contract
	for offset := 0; ; offset += c.pageSize {
		var page []contractDTO
		if err := c.getPage(ctx, "/contracts", nil, offset, c.pageSize, &page); err != nil {
			return nil, err
		}
		for _, dto := range page {
			all = append(all, recon.Contract{
				ID:         dto.ID,
				Name:       dto.Title,
				WorkerName: dto.Worker.FullName,
				Role:       dto.JobTitle,
				Status:     dto.Status,
				Type:       dto.Type,
			})
		}
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

// ListPayments retrieves one page of payment records for a period window.
func (c *Client) ListPayments(ctx context.Context, window recon.PeriodWindow, offset, limit int) ([]recon.PaymentRecord, error) {
	query := url.Values{}
	query.Set("date_from", window.Start.UTC().Format("2006-01-02"))
	query.Set("date_to", window.End.UTC().Format("2006-01-02"))

	var page []paymentDTO
	if err := c.getPage(ctx, "/payments", query, offset, limit, &page); err != nil {
		return nil, err
	}
	records := make([]recon.PaymentRecord, 0, len(page))
	for _, dto := range page {
		records = append(records, recon.PaymentRecord{
			ContractID:   dto.ContractID,
			ContractName: dto.ContractName,
			Amount:       dto.Amount,
			Currency:     dto.Currency,
			Status:       dto.Status,
			OccurredAt:   parseDate(dto.PaymentDate),
		})
	}
	return records, nil
}

// ListPayslips retrieves the payslip set for the cycle starting at the given
// date. Used to decide whether the cycle splits into semi-monthly halves.
func (c *Client) ListPayslips(ctx context.Context, cycleStart time.Time) ([]recon.Payslip, error) {
	query := url.Values{}
	query.Set("cycle_start", cycleStart.UTC().Format("2006-01-02"))

	var all []recon.Payslip
	for offset := 0; ; offset += c.pageSize {
		var page []payslipDTO
		if err := c.getPage(ctx, "/payslips", query, offset, c.pageSize, &page); err != nil {
			return nil, err
		}
		for _, dto := range page {
			all = append(all, recon.Payslip{
				ContractID:    dto.ContractID,
				WorkerCountry: dto.Worker.Country,
			})
		}
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

// getPage performs one bounded list request and decodes it through the
// response normalizer.
func (c *Client) getPage(ctx context.Context, path string, query url.Values, offset, limit int, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	if query == nil {
		query = url.Values{}
	}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode)
	}
	if c.onPage != nil {
		c.onPage(path)
	}
	return decodeCollection(resp.Body, out)
}

// decodeCollection accepts either a bare JSON array or an envelope with a
// "data" field and decodes the collection into out. Provider variants differ
// on the envelope; normalizing here keeps the engine's input uniform.
func decodeCollection(r io.Reader, out any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return transportError(err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return malformedError(fmt.Errorf("empty response body"))
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return malformedError(err)
		}
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return malformedError(err)
	}
	if len(envelope.Data) == 0 {
		return malformedError(fmt.Errorf("response has no data field"))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return malformedError(err)
	}
	return nil
}

// parseDate handles the two timestamp shapes the provider emits. An
// unparsable value yields the zero time; windowing is applied upstream by the
// date filter, so the timestamp is informational.
func parseDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Time{}
}
