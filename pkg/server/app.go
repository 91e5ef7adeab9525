package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	internalrepo "CotLens/internal/repository"
	"CotLens/internal/scheduler"
	icache "CotLens/internal/service/cache"
	"CotLens/pkg/config"
	xhttp "CotLens/pkg/http"
	applogger "CotLens/pkg/logger"
	"CotLens/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	store      *internalrepo.SQLiteStore
	sched      *scheduler.Scheduler
	refresh    *scheduler.RefreshJob
	rcache     *icache.RedisCache
	smsQueue   *queue.RedisQueue
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. rcache and smsQueue
// may be nil when redis is disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	store *internalrepo.SQLiteStore,
	sched *scheduler.Scheduler,
	refresh *scheduler.RefreshJob,
	rcache *icache.RedisCache,
	smsQueue *queue.RedisQueue,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		store:    store,
		sched:    sched,
		refresh:  refresh,
		rcache:   rcache,
		smsQueue: smsQueue,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.log

	// Verify redis before serving traffic; a configured but unreachable
	// cache is a deploy error, not something to limp along without.
	if a.rcache != nil {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := a.rcache.Ping(pingCtx)
		pingCancel()
		if err != nil {
			l.Error("redis ping failed", applogger.Error(err))
			return err
		}
		l.Info("redis connected", applogger.String("addr", a.cfg.Cache.Redis.Addr))
	}

	if a.smsQueue != nil {
		a.smsQueue.RegisterJob(queue.NewLogDigestJob(l))
		if err := a.smsQueue.Start(); err != nil {
			l.Error("queue start failed", applogger.Error(err))
			return err
		}
		// Error logs get batched and drained through the queue as digests.
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          queue.LogDigestType,
			Publisher:      a.smsQueue,
		})
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	a.registerHealth(a.httpServer.Echo())

	// Weekly refresh keeps the series cache warm around CFTC publication.
	if a.refresh != nil {
		schedule := a.cfg.Refresh.Schedule
		if schedule == "" {
			schedule = "45 15 * * 5"
		}
		if err := a.sched.AddJob(schedule, a.refresh); err != nil {
			l.Error("refresh job registration failed", applogger.Error(err))
			return err
		}
		a.sched.Start()

		// Warm the cache on boot so the first requests do not all stampede
		// the upstream API.
		go func() {
			if err := a.sched.RunNow(a.refresh); err != nil {
				l.Warn("initial refresh incomplete", applogger.Error(err))
			}
		}()
	}

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.log

	if a.refresh != nil {
		a.sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.smsQueue != nil {
		l.RemoveCollector()
		if err := a.smsQueue.Stop(shutdownCtx); err != nil {
			l.Warn("queue stop error", applogger.Error(err))
		}
	}

	if a.rcache != nil {
		if err := a.rcache.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}

	if err := a.store.Close(); err != nil {
		l.Warn("database close error", applogger.Error(err))
	}

	l.Info("shutdown complete")
	return nil
}

// registerHealth exposes liveness and readiness probes.
func (a *App) registerHealth(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := a.store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
}

// Handlers bundles route registrars into a single xhttp.Handler.
type Handlers struct {
	list []xhttp.Handler
}

func NewHandlers(hs ...xhttp.Handler) *Handlers {
	return &Handlers{list: hs}
}

func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	for _, handler := range h.list {
		handler.RegisterRoutes(e)
	}
}
