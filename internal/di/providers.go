package di

import (
	"fmt"
	"time"

	"CotLens/internal/auth"
	"CotLens/internal/cftc"
	"CotLens/internal/dashboard"
	"CotLens/internal/domain/repository"
	"CotLens/internal/handler/api"
	internalrepo "CotLens/internal/repository"
	"CotLens/internal/scheduler"
	icache "CotLens/internal/service/cache"
	"CotLens/internal/service/ratelimit"
	"CotLens/internal/sms"
	"CotLens/internal/usecase"
	"CotLens/pkg/config"
	xhttp "CotLens/pkg/http"
	applogger "CotLens/pkg/logger"
	"CotLens/pkg/metrics"
	"CotLens/pkg/queue"
	"CotLens/pkg/server"
)

// ProvideLogger creates the application logger. Production gets JSON,
// everything else a readable console.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	timeout := cfg.CFTC.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return xhttp.NewClient(xhttp.WithTimeout(timeout))
}

// ProvideReportProvider creates the CFTC Socrata client.
func ProvideReportProvider(cfg *config.Config, hc *xhttp.Client, log *applogger.Logger) repository.ReportProvider {
	opts := []cftc.ClientOption{}
	if cfg.CFTC.BaseURL != "" {
		opts = append(opts, cftc.WithBaseURL(cfg.CFTC.BaseURL))
	}
	if cfg.CFTC.AppToken != "" {
		opts = append(opts, cftc.WithAppToken(cfg.CFTC.AppToken))
	}
	if cfg.CFTC.BatchSize > 0 {
		opts = append(opts, cftc.WithBatchSize(cfg.CFTC.BatchSize))
	}
	return cftc.New(hc, log, opts...)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSeriesCache creates the in-process cache for weekly series.
func ProvideSeriesCache() *icache.TTLCache {
	return icache.NewTTLCache()
}

// ProvideRedisCache creates the shared redis cache, or nil when disabled.
func ProvideRedisCache(cfg *config.Config) *icache.RedisCache {
	if !cfg.Cache.Redis.Enabled {
		return nil
	}
	return icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
}

// ProvideChartCache picks the response-cache backend. Redis when available
// so instances share rendered charts, local memory otherwise.
func ProvideChartCache(rcache *icache.RedisCache) icache.BytesCache {
	if rcache != nil {
		return rcache
	}
	return icache.NewTTLCache()
}

// ProvidePositioningUseCase creates the analytics use case.
func ProvidePositioningUseCase(
	provider repository.ReportProvider,
	c *icache.TTLCache,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.PositioningUseCase {
	return usecase.NewPositioningUseCase(provider, c, m, log,
		usecase.WithSeriesTTL(cfg.Cache.SeriesTTL))
}

// ProvideStore opens the SQLite database.
func ProvideStore(cfg *config.Config) (*internalrepo.SQLiteStore, error) {
	store, err := internalrepo.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: %w", err)
	}
	return store, nil
}

// ProvideJWTService creates the token service.
func ProvideJWTService(cfg *config.Config) *auth.JWTService {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return auth.NewJWTService(cfg.Auth.JWTSecret, ttl)
}

// ProvideSMSQueue creates the redis-backed delivery queue. Requires redis;
// returns nil otherwise so the direct sender is used.
func ProvideSMSQueue(cfg *config.Config, log *applogger.Logger, rcache *icache.RedisCache) *queue.RedisQueue {
	if rcache == nil {
		return nil
	}
	return queue.NewRedisQueue(log, &queue.QueueConfig{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, rcache.Client(), queue.ModeProducerConsumer)
}

// ProvideCodeSender picks the verification-code delivery path.
func ProvideCodeSender(
	cfg *config.Config,
	hc *xhttp.Client,
	log *applogger.Logger,
	q *queue.RedisQueue,
) auth.CodeSender {
	if !cfg.SMS.Enabled {
		return sms.NewNoopSender(log)
	}
	gateway := sms.NewGatewaySender(hc, log, cfg.SMS.URL, cfg.SMS.APIKey, cfg.SMS.From)
	if q == nil {
		return gateway
	}
	q.RegisterJob(sms.NewDeliveryJob(gateway, log))
	return sms.NewQueuedSender(q)
}

// ProvideAuthService creates the signup/login/verification service.
func ProvideAuthService(
	store *internalrepo.SQLiteStore,
	sender auth.CodeSender,
	tokens *auth.JWTService,
	log *applogger.Logger,
) *auth.Service {
	return auth.NewService(store, sender, tokens, ratelimit.New(), log)
}

// ProvideReducer creates the saved-view reducer.
func ProvideReducer(provider repository.ReportProvider) *dashboard.Reducer {
	return dashboard.NewReducer(provider)
}

// ProvideHandlers bundles all route registrars.
func ProvideHandlers(
	cfg *config.Config,
	log *applogger.Logger,
	uc *usecase.PositioningUseCase,
	chartCache icache.BytesCache,
	svc *auth.Service,
	tokens *auth.JWTService,
	store *internalrepo.SQLiteStore,
	reducer *dashboard.Reducer,
) xhttp.Handler {
	return server.NewHandlers(
		api.NewPositioningEchoHandler(log, uc, chartCache,
			api.WithChartTTL(cfg.Cache.ChartTTL)),
		api.NewAuthEchoHandler(log, svc, tokens),
		api.NewViewsEchoHandler(log, store, reducer, tokens),
	)
}

// ProvideScheduler creates the cron scheduler.
func ProvideScheduler(log *applogger.Logger) *scheduler.Scheduler {
	return scheduler.New(log)
}

// ProvideRefreshJob creates the weekly cache refresh job.
func ProvideRefreshJob(uc *usecase.PositioningUseCase, log *applogger.Logger, cfg *config.Config) *scheduler.RefreshJob {
	symbols := cfg.Refresh.Symbols
	if len(symbols) == 0 {
		symbols = []string{"CL", "GC", "ES", "ZN", "6E"}
	}
	return scheduler.NewRefreshJob(uc, log, symbols, cfg.Refresh.Timeout)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	store *internalrepo.SQLiteStore,
	sched *scheduler.Scheduler,
	refresh *scheduler.RefreshJob,
	rcache *icache.RedisCache,
	q *queue.RedisQueue,
) *server.App {
	return server.New(cfg, log, handler, store, sched, refresh, rcache, q)
}
