package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// sessionStoreInMemory — key-value слот для identity без персистентности.
// Используется в тестах и при запуске без Redis.
type sessionStoreInMemory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewSessionStore создаёт in-memory реализацию SessionStore.
func NewSessionStore() domain.SessionStore {
	return &sessionStoreInMemory{items: make(map[string][]byte)}
}

func (s *sessionStoreInMemory) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), data...)
	return nil
}

func (s *sessionStoreInMemory) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *sessionStoreInMemory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

var _ domain.SessionStore = (*sessionStoreInMemory)(nil)
