package repository

import (
	"context"
	"errors"

	"CotLens/internal/domain/models"
)

// ErrUnknownSymbol is returned by providers for symbols with no contract
// mapping under the requested report type.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ReportProvider supplies deduplicated, date-sorted COT report data per
// (symbol, report type). Implementations are expected to handle contract
// renames and pagination internally.
type ReportProvider interface {
	// HistoricalSeries returns all weekly rows for symbol, oldest-first.
	HistoricalSeries(ctx context.Context, symbol string, rt ReportType) ([]models.WeeklyRow, error)
	// LatestReport returns the most recent processed legacy report for symbol.
	LatestReport(ctx context.Context, symbol string) (*models.LatestReport, error)
	// Symbols lists supported symbols for a report type.
	Symbols(rt ReportType) []string
	// Categories lists trader category labels for a report type.
	Categories(rt ReportType) []string
}

// UserStore persists accounts and phone verification codes.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	MarkPhoneVerified(ctx context.Context, id string) error
	SaveCode(ctx context.Context, c *models.VerificationCode) error
	CodeByUser(ctx context.Context, userID string) (*models.VerificationCode, error)
	DeleteCode(ctx context.Context, userID string) error
}

// ViewStore persists per-user dashboard view state.
type ViewStore interface {
	View(ctx context.Context, userID string) (*models.ViewState, error)
	SaveView(ctx context.Context, userID string, v *models.ViewState) error
}

// Metrics records operational counters and timings.
type Metrics interface {
	RecordFetch(symbol, report string)
	RecordError(kind string)
	RecordCacheHit(layer string)
	RecordCacheMiss(layer string)
	RecordLatency(op string, seconds float64)
}
