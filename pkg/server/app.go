package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alokrrr/Ecom-Analytics/internal/usecase"
	pkgch "github.com/alokrrr/Ecom-Analytics/pkg/clickhouse"
	"github.com/alokrrr/Ecom-Analytics/pkg/config"
	xhttp "github.com/alokrrr/Ecom-Analytics/pkg/http"
	pkgkafka "github.com/alokrrr/Ecom-Analytics/pkg/kafka"
	applogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP API, the Kafka order
// ingest pipeline, and the ClickHouse client behind both.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	consumer   *pkgkafka.Consumer
	ingestor   *usecase.OrderIngestor
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	ingestor *usecase.OrderIngestor,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		consumer: consumer,
		ingestor: ingestor,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if a.consumer != nil && a.ingestor != nil {
		a.consumer.RegisterHandler(a.ingestor)
		a.ingestor.Start()
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("order ingest started",
			applogger.String("topic", a.ingestor.Topic()),
			applogger.Strings("brokers", a.cfg.Kafka.Brokers))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown stops intake first so the final ingest flush can still reach
// ClickHouse before the client closes.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.ingestor != nil {
		if err := a.ingestor.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("ingest drain error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
