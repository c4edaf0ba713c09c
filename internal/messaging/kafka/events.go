package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// События продаж
	EventTypeSaleCreated EventType = "sale.created"

	// События каталога
	EventTypeStoreCreated   EventType = "store.created"
	EventTypeStoreUpdated   EventType = "store.updated"
	EventTypeProductCreated EventType = "product.created"
	EventTypeProductUpdated EventType = "product.updated"
	EventTypeProductDeleted EventType = "product.deleted"
)

// Topics для Kafka
const (
	TopicSaleEvents      = "storefront.sale.events"
	TopicCatalogEvents   = "storefront.catalog.events"
	TopicDeadLetterQueue = "storefront.dlq" // Dead Letter Queue для failed messages
)

// SaleEvent представляет событие продажи
type SaleEvent struct {
	EventType   EventType `json:"event_type"`
	SaleID      string    `json:"sale_id"`
	StoreID     string    `json:"store_id"`
	UserID      string    `json:"user_id"`
	TotalAmount int64     `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// CatalogEvent представляет событие изменения каталога
type CatalogEvent struct {
	EventType EventType              `json:"event_type"`
	StoreID   string                 `json:"store_id"`
	EntityID  string                 `json:"entity_id"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewSaleEvent создает новое событие продажи
func NewSaleEvent(saleID, storeID, userID string, totalAmount int64) *SaleEvent {
	return &SaleEvent{
		EventType:   EventTypeSaleCreated,
		SaleID:      saleID,
		StoreID:     storeID,
		UserID:      userID,
		TotalAmount: totalAmount,
		Timestamp:   time.Now(),
	}
}

// NewCatalogEvent создает новое событие каталога
func NewCatalogEvent(eventType EventType, storeID, entityID string, metadata map[string]interface{}) *CatalogEvent {
	return &CatalogEvent{
		EventType: eventType,
		StoreID:   storeID,
		EntityID:  entityID,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
