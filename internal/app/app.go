// Package app собирает витрину из хранилищ, сервисов и воркеров
// и управляет её жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/seed"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Run запускает витрину и блокируется до отмены контекста или
// фатальной ошибки HTTP-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	deps := NewDependencies(cfg, logger)

	data, accounts, err := loadSeed(cfg, logger)
	if err != nil {
		return err
	}
	if err := data.Apply(seed.Repositories{
		Stores:   deps.Stores,
		Products: deps.Products,
		Sales:    deps.Sales,
	}); err != nil {
		return fmt.Errorf("наполнение каталога: %w", err)
	}
	logger.WithFields(log.Fields{
		"stores":   len(data.Stores),
		"products": len(data.Products),
	}).Info("Каталог наполнен стартовыми данными")

	checkoutMetrics := metrics.NewCheckoutMetrics()
	catalogService := catalog.NewService(deps.Stores, deps.Products, deps.Activity, deps.Outbox, logger.WithField("layer", "catalog"))
	recorder := checkout.NewRecorder(deps.Products, deps.Sales, deps.Activity, deps.Outbox, checkoutMetrics, logger.WithField("layer", "checkout"))

	publisher, dlqPublisher, kafkaProducer := initOutboxPublishers(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	outboxWorker := outbox.NewWorker(deps.Outbox, publisher,
		outbox.WithLogger(logger.WithField("layer", "outbox")),
		outbox.WithDLQPublisher(dlqPublisher),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
	cleanupWorker := idempotency.NewCleanupWorker(deps.Idempotency,
		idempotency.WithLogger(logger.WithField("layer", "idempotency")),
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outboxWorker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanupWorker.Run(ctx)
	}()

	server := httpapi.NewServer(
		catalogService,
		recorder,
		deps.Sales,
		accounts,
		deps.Sessions,
		deps.Idempotency,
		checkoutMetrics,
		cfg.ServiceName,
		version.Version(),
		logger,
	)

	healthHandler := healthcheck.NewHandler(version.Version())
	healthHandler.RegisterChecker("catalog", healthcheck.NewSimpleChecker("catalog", func() error {
		_, err := deps.Stores.List()
		return err
	}))
	healthHandler.RegisterChecker("sessions", healthcheck.NewSimpleChecker("sessions", func() error {
		_, _, err := deps.Sessions.Get("healthcheck")
		return err
	}))

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.NewRouter()}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки, останавливаем HTTP-сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		wg.Wait()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		wg.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// loadSeed выбирает источник стартовых данных: файл или встроенный набор.
func loadSeed(cfg Config, logger *log.Entry) (seed.Data, []domain.Identity, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if cfg.SeedFile == "" {
		data := seed.Default()
		return data, data.Identities(), nil
	}

	data, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return seed.Data{}, nil, fmt.Errorf("загрузка seed-файла: %w", err)
	}
	logger.WithField("file", cfg.SeedFile).Info("Стартовые данные загружены из файла")
	return data, data.Identities(), nil
}

// startMetricsServer запускает HTTP-обработчик /metrics и health checks.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("Метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("Сервер метрик завершился с ошибкой")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("Остановка HTTP-сервера завершилась с ошибкой")
	}
}
