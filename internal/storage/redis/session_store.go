package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const opTimeout = 3 * time.Second

// sessionStoreRedis хранит сохранённые identity в Redis с TTL.
type sessionStoreRedis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore создаёт Redis-реализацию SessionStore.
// При ttl <= 0 записи живут без ограничения по времени.
func NewSessionStore(addr, password string, ttl time.Duration) domain.SessionStore {
	return &sessionStoreRedis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (s *sessionStoreRedis) Put(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *sessionStoreRedis) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *sessionStoreRedis) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

var _ domain.SessionStore = (*sessionStoreRedis)(nil)
