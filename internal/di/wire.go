//go:build wireinject
// +build wireinject

package di

import (
	"CotLens/pkg/config"
	"CotLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideHTTPClient,

		// Caching
		ProvideSeriesCache,
		ProvideRedisCache,
		ProvideChartCache,

		// Data sources
		ProvideReportProvider,
		ProvideStore,

		// Auth
		ProvideJWTService,
		ProvideSMSQueue,
		ProvideCodeSender,
		ProvideAuthService,

		// Use cases
		ProvidePositioningUseCase,
		ProvideReducer,

		// Transport
		ProvideHandlers,

		// Background jobs
		ProvideScheduler,
		ProvideRefreshJob,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
