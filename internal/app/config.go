package app

import (
	"os"
	"strconv"
	"time"
)

// Config описывает настройки запуска витрины.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	ServiceName string

	// RedisAddr пустой означает хранение сессий в памяти.
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	// KafkaBrokers пустой означает публикацию событий в лог.
	KafkaBrokers string

	// SeedFile пустой означает встроенный демонстрационный набор.
	SeedFile string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int
}

// DefaultConfig возвращает значения по умолчанию.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		ServiceName: "storefront",

		SessionTTL: 24 * time.Hour,

		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    50,
		OutboxMaxAttempts:  5,
		OutboxRetryDelay:   200 * time.Millisecond,

		IdempotencyCleanupInterval:  5 * time.Minute,
		IdempotencyCleanupBatchSize: 100,
	}
}

// ReadConfig собирает конфигурацию из окружения поверх значений по умолчанию.
func ReadConfig() Config {
	cfg := DefaultConfig()

	cfg.HTTPAddr = envOr("STOREFRONT_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MetricsAddr = envOr("STOREFRONT_METRICS_ADDR", cfg.MetricsAddr)
	cfg.ServiceName = envOr("STOREFRONT_SERVICE_NAME", cfg.ServiceName)

	cfg.RedisAddr = envOr("STOREFRONT_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envOr("STOREFRONT_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.SessionTTL = envDurationOr("STOREFRONT_SESSION_TTL", cfg.SessionTTL)

	cfg.KafkaBrokers = envOr("STOREFRONT_KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.SeedFile = envOr("STOREFRONT_SEED_FILE", cfg.SeedFile)

	cfg.OutboxPollInterval = envDurationOr("STOREFRONT_OUTBOX_POLL_INTERVAL", cfg.OutboxPollInterval)
	cfg.OutboxBatchSize = envIntOr("STOREFRONT_OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.OutboxMaxAttempts = envIntOr("STOREFRONT_OUTBOX_MAX_ATTEMPTS", cfg.OutboxMaxAttempts)
	cfg.OutboxRetryDelay = envDurationOr("STOREFRONT_OUTBOX_RETRY_DELAY", cfg.OutboxRetryDelay)

	cfg.IdempotencyCleanupInterval = envDurationOr("STOREFRONT_IDEMPOTENCY_CLEANUP_INTERVAL", cfg.IdempotencyCleanupInterval)
	cfg.IdempotencyCleanupBatchSize = envIntOr("STOREFRONT_IDEMPOTENCY_CLEANUP_BATCH_SIZE", cfg.IdempotencyCleanupBatchSize)

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
