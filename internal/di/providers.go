package di

import (
	"context"
	"fmt"
	"time"

	domrepo "github.com/alokrrr/Ecom-Analytics/internal/domain/repository"
	"github.com/alokrrr/Ecom-Analytics/internal/handler/api"
	internalrepo "github.com/alokrrr/Ecom-Analytics/internal/repository"
	icache "github.com/alokrrr/Ecom-Analytics/internal/service/cache"
	"github.com/alokrrr/Ecom-Analytics/internal/usecase"
	pkgch "github.com/alokrrr/Ecom-Analytics/pkg/clickhouse"
	"github.com/alokrrr/Ecom-Analytics/pkg/config"
	xhttp "github.com/alokrrr/Ecom-Analytics/pkg/http"
	pkgkafka "github.com/alokrrr/Ecom-Analytics/pkg/kafka"
	applogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"
	"github.com/alokrrr/Ecom-Analytics/pkg/metrics"
	"github.com/alokrrr/Ecom-Analytics/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		pkgch.WithConnectRetry(cfg.ClickHouse.ConnectRetry),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideOrderStore creates the order store and initializes the schema.
func ProvideOrderStore(chClient *pkgch.Client, cfg *config.Config) (domrepo.OrderStore, error) {
	store := internalrepo.NewCHOrderStore(chClient, cfg.ClickHouse.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKPIStore creates the reporting store.
func ProvideKPIStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) *internalrepo.CHKPIStore {
	store := internalrepo.NewCHKPIStore(chClient, cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvideRevenueSource exposes the reporting store as the revenue feed
// for anomaly detection.
func ProvideRevenueSource(store *internalrepo.CHKPIStore) domrepo.RevenueSource {
	return store
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideKafkaConsumer creates a Kafka consumer, or nil when ingest is
// disabled (e.g. read-only deployments over an existing dataset).
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.GroupID),
		pkgkafka.WithConsumerTopic(cfg.Kafka.Topic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.MinBytes, cfg.Kafka.MaxBytes),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideOrderIngestor creates the order ingest use case.
func ProvideOrderIngestor(cfg *config.Config, store domrepo.OrderStore, m domrepo.Metrics) *usecase.OrderIngestor {
	return usecase.NewOrderIngestor(cfg.Kafka.Topic, store, m, cfg.Kafka.BatchSize, cfg.Kafka.BatchFlush)
}

// ProvideCache selects the response cache backend: Redis when
// configured, in-process TTL cache otherwise.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.RedisEnabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideKPIService creates the KPI use case.
func ProvideKPIService(store *internalrepo.CHKPIStore) *usecase.KPIService {
	return usecase.NewKPIService(store)
}

// ProvideAnomalyReporter creates the anomaly detection use case.
func ProvideAnomalyReporter(source domrepo.RevenueSource, cfg *config.Config) *usecase.AnomalyReporter {
	return usecase.NewAnomalyReporter(source, cfg.Anomaly.RangeDays)
}

// ProvideHTTPHandler assembles all route handlers.
func ProvideHTTPHandler(
	l *applogger.Logger,
	cfg *config.Config,
	kpiSvc *usecase.KPIService,
	reporter *usecase.AnomalyReporter,
	orderStore domrepo.OrderStore,
	ingestor *usecase.OrderIngestor,
	cache icache.BytesCache,
) xhttp.Handler {
	kpi := api.NewKPIEchoHandler(l, kpiSvc)
	kpi.SetCache(cache, cfg.Cache.KPITTL)

	return xhttp.Handlers{
		kpi,
		api.NewAnomalyEchoHandler(l, reporter, orderStore),
		api.NewLiveEchoHandler(l, ingestor),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	ingestor *usecase.OrderIngestor,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, handler, consumer, ingestor, chClient)
}
