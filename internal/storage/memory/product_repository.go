package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository
// с сохранением порядка добавления для List/ListByStore.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	r.items[product.ID] = product
	r.order = append(r.order, product.ID)
	return nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает все товары в порядке добавления.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id])
	}
	return result, nil
}

// ListByStore возвращает товары магазина, сохраняя порядок добавления.
func (r *productRepositoryInMemory) ListByStore(storeID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		product := r.items[id]
		if product.StoreID != storeID {
			continue
		}
		result = append(result, product)
	}
	return result, nil
}

// Update перезаписывает товар или возвращает ErrProductNotFound.
// Тихий no-op исходного поведения заменён явной ошибкой: молчаливая
// потеря записи хуже, чем отказ.
func (r *productRepositoryInMemory) Update(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	product.UpdatedAt = time.Now().UTC()
	r.items[product.ID] = product
	return nil
}

// Delete удаляет товар; отсутствие записи не считается ошибкой.
func (r *productRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AdjustStock атомарно меняет остаток товара на delta.
func (r *productRepositoryInMemory) AdjustStock(id string, delta int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	next := product.Stock + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	product.Stock = next
	product.UpdatedAt = time.Now().UTC()
	r.items[id] = product
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
