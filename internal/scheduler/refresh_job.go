package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	domrepo "CotLens/internal/domain/repository"
	"CotLens/internal/usecase"
	"CotLens/pkg/logger"
)

// allReportTypes covered by the refresh pass.
var allReportTypes = []domrepo.ReportType{
	domrepo.ReportLegacy,
	domrepo.ReportDisaggregated,
	domrepo.ReportTFF,
}

// RefreshJob re-fetches tracked symbols so the cache stays warm and user
// requests rarely hit the upstream API. CFTC publishes on Friday afternoons;
// the schedule is configured around that.
type RefreshJob struct {
	uc      *usecase.PositioningUseCase
	log     *logger.Logger
	symbols []string
	timeout time.Duration
}

func NewRefreshJob(uc *usecase.PositioningUseCase, log *logger.Logger, symbols []string, timeout time.Duration) *RefreshJob {
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	return &RefreshJob{uc: uc, log: log, symbols: symbols, timeout: timeout}
}

func (j *RefreshJob) Name() string { return "report_refresh" }

func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	failed := 0
	for _, symbol := range j.symbols {
		for _, rt := range allReportTypes {
			err := j.uc.Refresh(ctx, symbol, rt)
			if err == nil {
				continue
			}
			// Not every symbol exists in every report family.
			if errors.Is(err, domrepo.ErrUnknownSymbol) {
				continue
			}
			failed++
			j.log.Warn("refresh failed",
				logger.String("symbol", symbol),
				logger.String("report_type", string(rt)),
				logger.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("refresh: %d fetches failed", failed)
	}
	return nil
}
