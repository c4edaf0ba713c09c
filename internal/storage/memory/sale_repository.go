package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// saleRepositoryInMemory — in-memory журнал продаж. Записи неизменяемы:
// репозиторий не предоставляет Update/Delete.
type saleRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Sale
}

// NewSaleRepository возвращает in-memory журнал продаж.
func NewSaleRepository() domain.SaleRepository {
	return &saleRepositoryInMemory{
		items: make(map[string]domain.Sale),
	}
}

// Create записывает продажу, если ID ещё не занят.
func (r *saleRepositoryInMemory) Create(sale domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[sale.ID]; exists {
		return domain.ErrSaleAlreadyExists
	}
	r.items[sale.ID] = cloneSale(sale)
	return nil
}

// Get возвращает продажу или ErrSaleNotFound, если её нет.
func (r *saleRepositoryInMemory) Get(id string) (domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.items[id]
	if !ok {
		return domain.Sale{}, domain.ErrSaleNotFound
	}
	return cloneSale(sale), nil
}

// ListByStore возвращает продажи магазина, новые первыми.
func (r *saleRepositoryInMemory) ListByStore(storeID string, limit int) ([]domain.Sale, error) {
	return r.list(func(sale domain.Sale) bool { return sale.StoreID == storeID }, limit)
}

// ListByUser возвращает продажи покупателя, новые первыми.
func (r *saleRepositoryInMemory) ListByUser(userID string, limit int) ([]domain.Sale, error) {
	return r.list(func(sale domain.Sale) bool { return sale.UserID == userID }, limit)
}

func (r *saleRepositoryInMemory) list(match func(domain.Sale) bool, limit int) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Sale, 0, len(r.items))
	for _, sale := range r.items {
		if !match(sale) {
			continue
		}
		result = append(result, cloneSale(sale))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		// При равных метках времени порядок стабилизирует ID по возрастанию.
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func cloneSale(src domain.Sale) domain.Sale {
	dst := src
	dst.Lines = append([]domain.SaleLine(nil), src.Lines...)
	return dst
}

var _ domain.SaleRepository = (*saleRepositoryInMemory)(nil)
