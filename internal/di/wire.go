//go:build wireinject
// +build wireinject

package di

import (
	"github.com/alokrrr/Ecom-Analytics/pkg/config"
	"github.com/alokrrr/Ecom-Analytics/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaConsumer,

		// Repositories
		ProvideOrderStore,
		ProvideKPIStore,
		ProvideRevenueSource,
		ProvideCache,

		// Use cases
		ProvideKPIService,
		ProvideAnomalyReporter,
		ProvideOrderIngestor,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
