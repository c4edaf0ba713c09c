package checkout

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Recorder оформляет покупку: проверяет остатки, списывает их и
// фиксирует по одной продаже на магазин. Либо проходят все позиции
// корзины, либо ни одна.
type Recorder struct {
	products domain.ProductRepository
	sales    domain.SaleRepository
	activity domain.ActivityRepository
	outbox   domain.OutboxRepository
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry
}

// NewRecorder создаёт сервис оформления. activity, outbox и metrics опциональны.
func NewRecorder(
	products domain.ProductRepository,
	sales domain.SaleRepository,
	activity domain.ActivityRepository,
	outbox domain.OutboxRepository,
	checkoutMetrics *metrics.CheckoutMetrics,
	logger *log.Entry,
) *Recorder {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Recorder{
		products: products,
		sales:    sales,
		activity: activity,
		outbox:   outbox,
		metrics:  checkoutMetrics,
		logger:   logger.WithField("component", "checkout_recorder"),
	}
}

// appliedDecrement запоминает списание для компенсации при откате.
type appliedDecrement struct {
	productID string
	qty       int32
}

// Checkout превращает корзину в продажи. Возвращает продажи в порядке
// первого появления магазинов в корзине. При любой ошибке уже
// применённые списания остатков откатываются, корзина не очищается.
func (r *Recorder) Checkout(identity domain.Identity, cart *domain.Cart) ([]domain.Sale, error) {
	started := time.Now()
	if r.metrics != nil {
		r.metrics.RecordCheckoutStarted()
	}

	sales, err := r.checkout(identity, cart)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordCheckoutFailed()
		}
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.RecordCheckoutCompleted()
		r.metrics.RecordCheckoutDuration(time.Since(started))
		for _, sale := range sales {
			r.metrics.RecordSale(sale.StoreID, sale.TotalAmount)
		}
	}
	return sales, nil
}

func (r *Recorder) checkout(identity domain.Identity, cart *domain.Cart) ([]domain.Sale, error) {
	if identity.IsZero() {
		return nil, domain.ErrNotAuthenticated
	}
	if !domain.CapabilitiesFor(identity).CanCheckout() {
		return nil, domain.ErrUnauthorized
	}
	if cart == nil || cart.LineCount() == 0 {
		return nil, domain.ErrEmptyCart
	}

	partitions := cart.PartitionByStore()

	// Сначала валидация всех позиций против живых остатков. Снимки
	// в корзине могли устареть, решает текущее состояние каталога.
	type pricedLine struct {
		product domain.Product
		qty     int32
	}
	pricedPartitions := make([][]pricedLine, 0, len(partitions))
	for _, partition := range partitions {
		lines := make([]pricedLine, 0, len(partition.Lines))
		for _, line := range partition.Lines {
			product, err := r.products.Get(line.Product.ID)
			if err != nil {
				return nil, err
			}
			if product.Stock < line.Quantity {
				return nil, domain.ErrInsufficientStock
			}
			lines = append(lines, pricedLine{product: product, qty: line.Quantity})
		}
		pricedPartitions = append(pricedPartitions, lines)
	}

	// Списание остатков с компенсацией при частичном провале.
	applied := make([]appliedDecrement, 0, cart.LineCount())
	rollback := func() {
		for i := len(applied) - 1; i >= 0; i-- {
			if err := r.products.AdjustStock(applied[i].productID, applied[i].qty); err != nil {
				r.logger.WithError(err).WithField("product_id", applied[i].productID).
					Error("Не удалось вернуть остаток при откате оформления")
			}
		}
	}
	for _, lines := range pricedPartitions {
		for _, line := range lines {
			if err := r.products.AdjustStock(line.product.ID, -line.qty); err != nil {
				rollback()
				return nil, err
			}
			applied = append(applied, appliedDecrement{productID: line.product.ID, qty: line.qty})
		}
	}

	// Одна продажа на магазин, общая метка времени на всё оформление.
	now := time.Now().UTC()
	sales := make([]domain.Sale, 0, len(partitions))
	for i, partition := range partitions {
		saleLines := make([]domain.SaleLine, 0, len(pricedPartitions[i]))
		var total int64
		for _, line := range pricedPartitions[i] {
			saleLines = append(saleLines, domain.SaleLine{
				ProductID:   line.product.ID,
				Quantity:    line.qty,
				PriceAtSale: line.product.Price,
			})
			total += int64(line.qty) * line.product.Price
		}

		sale := domain.Sale{
			ID:          uuid.NewString(),
			StoreID:     partition.StoreID,
			UserID:      identity.ID,
			Lines:       saleLines,
			TotalAmount: total,
			CreatedAt:   now,
		}
		if err := r.sales.Create(sale); err != nil {
			rollback()
			return nil, err
		}
		sales = append(sales, sale)
	}

	// События и журнал только после того, как записаны все продажи.
	for _, sale := range sales {
		r.recordActivity(sale, now)
		r.emitSaleCreated(sale)

		r.logger.WithFields(log.Fields{
			"sale_id":  sale.ID,
			"store_id": sale.StoreID,
			"user_id":  sale.UserID,
			"total":    sale.TotalAmount,
		}).Info("Продажа зафиксирована")
	}

	cart.Clear()
	return sales, nil
}

// recordActivity пишет продажу в журнал магазина. Ошибка не прерывает оформление.
func (r *Recorder) recordActivity(sale domain.Sale, occurred time.Time) {
	if r.activity == nil {
		return
	}
	err := r.activity.Append(domain.ActivityEvent{
		StoreID:  sale.StoreID,
		Type:     "sale.recorded",
		Detail:   sale.ID,
		Occurred: occurred,
	})
	if err != nil {
		r.logger.WithError(err).WithField("sale_id", sale.ID).Error("Не удалось записать событие активности")
	}
}

// emitSaleCreated кладёт событие о продаже в outbox.
func (r *Recorder) emitSaleCreated(sale domain.Sale) {
	if r.outbox == nil {
		return
	}

	event := kafka.NewSaleEvent(sale.ID, sale.StoreID, sale.UserID, sale.TotalAmount)
	event.Timestamp = sale.CreatedAt

	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.WithError(err).WithField("sale_id", sale.ID).Error("Не удалось сериализовать событие продажи")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "sale",
		AggregateID:   sale.ID,
		EventType:     string(kafka.EventTypeSaleCreated),
		Payload:       payload,
	}
	if _, err := r.outbox.Enqueue(msg); err != nil {
		r.logger.WithError(err).WithField("sale_id", sale.ID).Error("Не удалось поставить событие в outbox")
	}
}
