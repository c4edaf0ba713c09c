package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// StoreInput — входные данные для создания или обновления магазина.
type StoreInput struct {
	Name     string
	Address  string
	City     string
	Phone    string
	Image    string
	Managers []string
}

// ProductInput — входные данные для создания или обновления товара.
type ProductInput struct {
	StoreID     string
	Name        string
	Description string
	Price       int64
	Category    string
	Image       string
	Stock       int32
}

// Service отвечает за каталог витрины. Чтение открыто для всех,
// запись требует Capabilities с правом на соответствующий магазин.
type Service struct {
	stores   domain.StoreRepository
	products domain.ProductRepository
	activity domain.ActivityRepository
	outbox   domain.OutboxRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога. activity и outbox опциональны.
func NewService(
	stores domain.StoreRepository,
	products domain.ProductRepository,
	activity domain.ActivityRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Service{
		stores:   stores,
		products: products,
		activity: activity,
		outbox:   outbox,
		logger:   logger.WithField("component", "catalog_service"),
	}
}

// ListStores возвращает все магазины в порядке добавления.
func (s *Service) ListStores() ([]domain.Store, error) {
	return s.stores.List()
}

// GetStore возвращает магазин вместе с его товарами.
func (s *Service) GetStore(id string) (domain.Store, []domain.Product, error) {
	store, err := s.stores.Get(id)
	if err != nil {
		return domain.Store{}, nil, err
	}
	products, err := s.products.ListByStore(id)
	if err != nil {
		return domain.Store{}, nil, err
	}
	return store, products, nil
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(id string) (domain.Product, error) {
	return s.products.Get(id)
}

// ListProducts возвращает все товары витрины.
func (s *Service) ListProducts() ([]domain.Product, error) {
	return s.products.List()
}

// Activity возвращает журнал активности магазина в хронологическом порядке.
func (s *Service) Activity(storeID string) ([]domain.ActivityEvent, error) {
	if _, err := s.stores.Get(storeID); err != nil {
		return nil, err
	}
	if s.activity == nil {
		return nil, nil
	}
	return s.activity.List(storeID)
}

// CreateStore создаёт магазин. Доступно только администратору.
func (s *Service) CreateStore(caps domain.Capabilities, input StoreInput) (domain.Store, error) {
	if !caps.CanCreateStore() {
		return domain.Store{}, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	store := domain.Store{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		City:      strings.TrimSpace(input.City),
		Phone:     input.Phone,
		Image:     input.Image,
		Managers:  input.Managers,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validationError(store.ValidateInvariants()); err != nil {
		return domain.Store{}, err
	}
	if err := s.stores.Create(store); err != nil {
		return domain.Store{}, err
	}

	s.recordActivity(store.ID, "store.created", store.Name, now)
	s.emitEvent("store", store.ID, store.ID, kafka.EventTypeStoreCreated, map[string]interface{}{
		"name": store.Name,
		"city": store.City,
	})

	s.logger.WithField("store_id", store.ID).Info("Магазин создан")
	return store, nil
}

// UpdateStore обновляет магазин. Требует права управления этим магазином.
func (s *Service) UpdateStore(caps domain.Capabilities, id string, input StoreInput) (domain.Store, error) {
	if !caps.CanManage(id) {
		return domain.Store{}, domain.ErrUnauthorized
	}

	store, err := s.stores.Get(id)
	if err != nil {
		return domain.Store{}, err
	}

	store.Name = strings.TrimSpace(input.Name)
	store.Address = strings.TrimSpace(input.Address)
	store.City = strings.TrimSpace(input.City)
	store.Phone = input.Phone
	store.Image = input.Image
	if input.Managers != nil {
		store.Managers = input.Managers
	}
	store.UpdatedAt = time.Now().UTC()

	if err := validationError(store.ValidateInvariants()); err != nil {
		return domain.Store{}, err
	}
	if err := s.stores.Update(store); err != nil {
		return domain.Store{}, err
	}

	s.recordActivity(store.ID, "store.updated", store.Name, store.UpdatedAt)
	s.emitEvent("store", store.ID, store.ID, kafka.EventTypeStoreUpdated, map[string]interface{}{
		"name": store.Name,
	})

	return store, nil
}

// CreateProduct создаёт товар в магазине, которым управляет identity.
func (s *Service) CreateProduct(caps domain.Capabilities, input ProductInput) (domain.Product, error) {
	if !caps.CanManage(input.StoreID) {
		return domain.Product{}, domain.ErrUnauthorized
	}
	if _, err := s.stores.Get(input.StoreID); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.NewString(),
		StoreID:     input.StoreID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Image:       input.Image,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validationError(product.ValidateInvariants()); err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Create(product); err != nil {
		return domain.Product{}, err
	}

	s.recordActivity(product.StoreID, "product.created", product.Name, now)
	s.emitEvent("product", product.ID, product.StoreID, kafka.EventTypeProductCreated, map[string]interface{}{
		"name":  product.Name,
		"price": product.Price,
	})

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"store_id":   product.StoreID,
	}).Info("Товар создан")
	return product, nil
}

// UpdateProduct обновляет товар. Отсутствующий товар — ErrProductNotFound.
func (s *Service) UpdateProduct(caps domain.Capabilities, id string, input ProductInput) (domain.Product, error) {
	product, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if !caps.CanManage(product.StoreID) {
		return domain.Product{}, domain.ErrUnauthorized
	}
	// Перенос товара между магазинами не поддерживается.
	if input.StoreID != "" && input.StoreID != product.StoreID {
		return domain.Product{}, fmt.Errorf("%w: store_id нельзя менять", domain.ErrValidation)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Category = strings.TrimSpace(input.Category)
	product.Image = input.Image
	product.Stock = input.Stock
	product.UpdatedAt = time.Now().UTC()

	if err := validationError(product.ValidateInvariants()); err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Update(product); err != nil {
		return domain.Product{}, err
	}

	s.recordActivity(product.StoreID, "product.updated", product.Name, product.UpdatedAt)
	s.emitEvent("product", product.ID, product.StoreID, kafka.EventTypeProductUpdated, map[string]interface{}{
		"price": product.Price,
		"stock": product.Stock,
	})

	return product, nil
}

// DeleteProduct удаляет товар. Отсутствие товара не считается ошибкой.
func (s *Service) DeleteProduct(caps domain.Capabilities, id string) error {
	product, err := s.products.Get(id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !caps.CanManage(product.StoreID) {
		return domain.ErrUnauthorized
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}

	now := time.Now().UTC()
	s.recordActivity(product.StoreID, "product.deleted", product.Name, now)
	s.emitEvent("product", product.ID, product.StoreID, kafka.EventTypeProductDeleted, nil)

	s.logger.WithField("product_id", id).Info("Товар удалён")
	return nil
}

// recordActivity пишет событие в журнал магазина. Ошибка не прерывает операцию.
func (s *Service) recordActivity(storeID, eventType, detail string, occurred time.Time) {
	if s.activity == nil {
		return
	}
	err := s.activity.Append(domain.ActivityEvent{
		StoreID:  storeID,
		Type:     eventType,
		Detail:   detail,
		Occurred: occurred,
	})
	if err != nil {
		s.logger.WithError(err).WithField("store_id", storeID).Error("Не удалось записать событие активности")
	}
}

// emitEvent кладёт событие каталога в outbox. Ошибка не прерывает операцию.
func (s *Service) emitEvent(aggregateType, entityID, storeID string, eventType kafka.EventType, metadata map[string]interface{}) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewCatalogEvent(eventType, storeID, entityID, metadata)
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).WithField("event", eventType).Error("Не удалось сериализовать событие")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   entityID,
		EventType:     string(eventType),
		Payload:       data,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Error("Не удалось поставить событие в outbox")
	}
}

// validationError сворачивает ошибки инвариантов в одну ошибку ErrValidation.
func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(parts, "; "))
}
