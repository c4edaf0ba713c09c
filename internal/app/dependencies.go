package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	redisstore "github.com/vladislavdragonenkov/storefront/internal/storage/redis"
)

// Dependencies содержит репозитории и хранилища приложения.
type Dependencies struct {
	Stores      domain.StoreRepository
	Products    domain.ProductRepository
	Sales       domain.SaleRepository
	Activity    domain.ActivityRepository
	Outbox      domain.OutboxRepository
	Idempotency domain.IdempotencyRepository
	Sessions    domain.SessionStore
	Logger      *log.Entry
}

// NewDependencies создаёт хранилища по конфигурации. Каталог и продажи
// живут в памяти, сессии переезжают в Redis если задан адрес.
func NewDependencies(cfg Config, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	var sessions domain.SessionStore
	if cfg.RedisAddr != "" {
		sessions = redisstore.NewSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		logger.WithField("addr", cfg.RedisAddr).Info("Сессии хранятся в Redis")
	} else {
		sessions = memory.NewSessionStore()
		logger.Info("Сессии хранятся в памяти")
	}

	return &Dependencies{
		Stores:      memory.NewStoreRepository(),
		Products:    memory.NewProductRepository(),
		Sales:       memory.NewSaleRepository(),
		Activity:    memory.NewActivityRepository(),
		Outbox:      memory.NewOutboxRepository(),
		Idempotency: memory.NewIdempotencyRepository(),
		Sessions:    sessions,
		Logger:      logger,
	}
}
