package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// storeRepositoryInMemory — простая in-memory реализация StoreRepository.
// Порядок добавления сохраняется отдельным срезом идентификаторов.
type storeRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Store
	order []string
}

// NewStoreRepository возвращает in-memory репозиторий магазинов.
func NewStoreRepository() domain.StoreRepository {
	return &storeRepositoryInMemory{
		items: make(map[string]domain.Store),
	}
}

// Create сохраняет новый магазин, если ID ещё не занят.
func (r *storeRepositoryInMemory) Create(store domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[store.ID]; exists {
		return domain.ErrStoreAlreadyExists
	}
	// Сохраняем копию, чтобы избежать мутаций извне.
	store.Managers = append([]string(nil), store.Managers...)
	r.items[store.ID] = store
	r.order = append(r.order, store.ID)
	return nil
}

// Get возвращает магазин или ErrStoreNotFound, если его нет.
func (r *storeRepositoryInMemory) Get(id string) (domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.items[id]
	if !ok {
		return domain.Store{}, domain.ErrStoreNotFound
	}
	return cloneStore(store), nil
}

// List возвращает магазины в порядке добавления.
func (r *storeRepositoryInMemory) List() ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Store, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, cloneStore(r.items[id]))
	}
	return result, nil
}

// Update перезаписывает магазин или возвращает ErrStoreNotFound.
func (r *storeRepositoryInMemory) Update(store domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[store.ID]; !ok {
		return domain.ErrStoreNotFound
	}
	store.UpdatedAt = time.Now().UTC()
	store.Managers = append([]string(nil), store.Managers...)
	r.items[store.ID] = store
	return nil
}

func cloneStore(src domain.Store) domain.Store {
	dst := src
	dst.Managers = append([]string(nil), src.Managers...)
	return dst
}

var _ domain.StoreRepository = (*storeRepositoryInMemory)(nil)
