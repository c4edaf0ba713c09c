package domain

import "time"

// StoreRepository описывает требования к хранилищу магазинов.
type StoreRepository interface {
	// Create сохраняет новый магазин. Возвращает ошибку, если ID уже занят.
	Create(store Store) error
	// Get возвращает магазин или ErrStoreNotFound, если его нет.
	Get(id string) (Store, error)
	// List возвращает магазины в порядке добавления.
	List() ([]Store, error)
	// Update перезаписывает магазин или возвращает ErrStoreNotFound.
	Update(store Store) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(product Product) error
	// Get возвращает товар или ErrProductNotFound, если его нет.
	Get(id string) (Product, error)
	// List возвращает все товары в порядке добавления.
	List() ([]Product, error)
	// ListByStore возвращает товары магазина, сохраняя порядок добавления.
	ListByStore(storeID string) ([]Product, error)
	// Update перезаписывает товар или возвращает ErrProductNotFound.
	Update(product Product) error
	// Delete удаляет товар; отсутствие записи не считается ошибкой.
	Delete(id string) error
	// AdjustStock атомарно меняет остаток на delta. Возвращает
	// ErrInsufficientStock, если итог ушёл бы в минус.
	AdjustStock(id string, delta int32) error
}

// SaleRepository — журнал продаж. Записи неизменяемы после создания.
type SaleRepository interface {
	Create(sale Sale) error
	// Get возвращает продажу или ErrSaleNotFound, если её нет.
	Get(id string) (Sale, error)
	// ListByStore возвращает продажи магазина, новые первыми,
	// ограничивая выборку limit (если > 0).
	ListByStore(storeID string, limit int) ([]Sale, error)
	// ListByUser возвращает продажи покупателя, новые первыми.
	ListByUser(userID string, limit int) ([]Sale, error)
}

// SessionStore — внешнее key-value хранилище для сохранённой identity.
// Единственное персистентное состояние системы.
type SessionStore interface {
	Put(key string, data []byte) error
	// Get возвращает (data, true, nil) при наличии значения и
	// (nil, false, nil) при его отсутствии.
	Get(key string) ([]byte, bool, error)
	Delete(key string) error
}

// ActivityEvent — событие журнала активности магазина (для консоли управления).
type ActivityEvent struct {
	StoreID  string
	Type     string
	Detail   string
	Occurred time.Time
}

// ActivityRepository хранит события активности по магазинам.
type ActivityRepository interface {
	Append(event ActivityEvent) error
	List(storeID string) ([]ActivityEvent, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// IdempotencyStatus описывает жизненный цикл ключа идемпотентности.
type IdempotencyStatus string

const (
	// IdempotencyStatusProcessing — запрос принят и ещё обрабатывается.
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	// IdempotencyStatusDone — запрос завершён, ответ сохранён для replay.
	IdempotencyStatusDone IdempotencyStatus = "done"
	// IdempotencyStatusFailed — обработка завершилась ошибкой.
	IdempotencyStatusFailed IdempotencyStatus = "failed"
)

// IdempotencyRecord хранит состояние обработки запроса с idempotency-key.
type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	ResponseBody []byte
	HTTPStatus   int
	Status       IdempotencyStatus
	TTLAt        time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(key string) (IdempotencyRecord, error)
	MarkDone(key string, responseBody []byte, httpStatus int) error
	MarkFailed(key string, responseBody []byte, httpStatus int) error
	DeleteExpired(before time.Time, limit int) (int, error)
}
