package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// activityRepositoryInMemory хранит журнал активности магазинов в памяти.
type activityRepositoryInMemory struct {
	mu     sync.RWMutex
	events map[string][]domain.ActivityEvent
}

// NewActivityRepository создаёт in-memory реализацию ActivityRepository.
func NewActivityRepository() domain.ActivityRepository {
	return &activityRepositoryInMemory{events: make(map[string][]domain.ActivityEvent)}
}

// Append добавляет событие в журнал магазина.
func (r *activityRepositoryInMemory) Append(event domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.StoreID] = append(r.events[event.StoreID], event)

	sort.Slice(r.events[event.StoreID], func(i, j int) bool {
		return r.events[event.StoreID][i].Occurred.Before(r.events[event.StoreID][j].Occurred)
	})

	return nil
}

// List возвращает события магазина в хронологическом порядке.
func (r *activityRepositoryInMemory) List(storeID string) ([]domain.ActivityEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[storeID]
	result := make([]domain.ActivityEvent, len(events))
	copy(result, events)
	return result, nil
}

var _ domain.ActivityRepository = (*activityRepositoryInMemory)(nil)
