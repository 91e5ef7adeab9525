package cftc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"CotLens/internal/domain/models"
	"CotLens/internal/domain/repository"
	httpx "CotLens/pkg/http"
	"CotLens/pkg/logger"
)

const (
	defaultBaseURL = "https://publicreporting.cftc.gov"
	defaultBatch   = 50000

	dateField     = "report_date_as_yyyy_mm_dd"
	contractField = "market_and_exchange_names"
)

// datasetIDs maps report types to their Socrata dataset identifiers.
var datasetIDs = map[repository.ReportType]string{
	repository.ReportLegacy:        "6dca-aqww",
	repository.ReportDisaggregated: "72hh-3qpy",
	repository.ReportTFF:           "gpe5-46if",
}

// ErrUnknownSymbol is repository.ErrUnknownSymbol, re-exported for callers
// of this package.
var ErrUnknownSymbol = repository.ErrUnknownSymbol

// ClientOption configures Client.
type ClientOption func(*Client)

// Client fetches COT reports from the CFTC Socrata API. It implements
// repository.ReportProvider.
type Client struct {
	http      *httpx.Client
	log       *logger.Logger
	baseURL   string
	appToken  string
	batchSize int
}

var _ repository.ReportProvider = (*Client)(nil)

// New creates a CFTC API client.
func New(hc *httpx.Client, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		http:      hc,
		log:       log,
		baseURL:   defaultBaseURL,
		batchSize: defaultBatch,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAppToken sets the Socrata application token. Unauthenticated requests
// work but are throttled aggressively.
func WithAppToken(token string) ClientOption {
	return func(c *Client) {
		c.appToken = token
	}
}

// WithBatchSize overrides the pagination batch size.
func WithBatchSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// HistoricalSeries fetches every report row for a symbol, across all
// historical contract names, deduplicated by date and sorted oldest-first.
func (c *Client) HistoricalSeries(ctx context.Context, symbol string, rt repository.ReportType) ([]models.WeeklyRow, error) {
	names := contractNames(symbol, rt)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnknownSymbol, symbol, rt)
	}

	dataset := datasetIDs[rt]
	var rows []rawRow
	for _, name := range names {
		fetched, err := c.fetchAll(ctx, dataset, name)
		if err != nil {
			return nil, fmt.Errorf("historical %s: %w", symbol, err)
		}
		rows = append(rows, fetched...)
	}

	series := buildSeries(rows, fieldsFor(rt))
	c.log.Debug("fetched historical series",
		logger.String("symbol", symbol),
		logger.String("report_type", string(rt)),
		logger.Int("rows", len(series)))
	return series, nil
}

// LatestReport fetches the single most recent legacy report for a symbol.
// Renamed contract variants are each queried for their newest row and the
// latest date wins; old variants are never aggregated into current data.
func (c *Client) LatestReport(ctx context.Context, symbol string) (*models.LatestReport, error) {
	names := contractNames(symbol, repository.ReportLegacy)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	dataset := datasetIDs[repository.ReportLegacy]
	var newest rawRow
	for _, name := range names {
		rows, err := c.fetchPage(ctx, dataset, name, 1, 0, dateField+" DESC")
		if err != nil {
			return nil, fmt.Errorf("latest %s: %w", symbol, err)
		}
		if len(rows) == 0 {
			continue
		}
		if newest == nil || rows[0][dateField] > newest[dateField] {
			newest = rows[0]
		}
	}
	if newest == nil {
		return emptyReport(), nil
	}
	return latestFromRow(newest), nil
}

// Symbols lists supported symbols for a report type, sorted.
func (c *Client) Symbols(rt repository.ReportType) []string {
	return symbolsFor(rt)
}

// Categories lists trader category labels for a report type.
func (c *Client) Categories(rt repository.ReportType) []string {
	return categoryLabels(rt)
}

// fetchAll pages through every row for one contract name, oldest-first.
func (c *Client) fetchAll(ctx context.Context, dataset, contract string) ([]rawRow, error) {
	var out []rawRow
	for offset := 0; ; offset += c.batchSize {
		page, err := c.fetchPage(ctx, dataset, contract, c.batchSize, offset, dateField+" ASC")
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < c.batchSize {
			return out, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, dataset, contract string, limit, offset int, order string) ([]rawRow, error) {
	headers := map[string]string{"Accept": "application/json"}
	if c.appToken != "" {
		headers["X-App-Token"] = c.appToken
	}

	var page []rawRow
	err := c.http.SendAndParse(ctx, &httpx.RequestOptions{
		Method:  httpx.MethodGet,
		URL:     fmt.Sprintf("%s/resource/%s.json", c.baseURL, dataset),
		Headers: headers,
		QueryParams: map[string][]string{
			"$where":  {fmt.Sprintf("%s = '%s'", contractField, escapeSoQL(contract))},
			"$order":  {order},
			"$limit":  {strconv.Itoa(limit)},
			"$offset": {strconv.Itoa(offset)},
		},
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", contract, err)
	}
	return page, nil
}

// escapeSoQL doubles single quotes inside SoQL string literals.
func escapeSoQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
