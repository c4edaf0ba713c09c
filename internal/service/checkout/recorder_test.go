package checkout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type fixture struct {
	recorder *Recorder
	products domain.ProductRepository
	sales    domain.SaleRepository
	outbox   domain.OutboxRepository
	activity domain.ActivityRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		products: memory.NewProductRepository(),
		sales:    memory.NewSaleRepository(),
		outbox:   memory.NewOutboxRepository(),
		activity: memory.NewActivityRepository(),
	}
	f.recorder = NewRecorder(f.products, f.sales, f.activity, f.outbox, nil, nil)

	products := []domain.Product{
		{ID: "product-1", StoreID: "store-1", Name: "Premium Notebook", Price: 399, Category: "Notebooks", Stock: 50},
		{ID: "product-2", StoreID: "store-1", Name: "Ballpoint Pens", Price: 249, Category: "Pens", Stock: 100},
		{ID: "product-4", StoreID: "store-2", Name: "A4 Paper", Price: 349, Category: "Paper", Stock: 200},
	}
	for _, p := range products {
		require.NoError(t, f.products.Create(p))
	}

	return f
}

func customer() domain.Identity {
	return domain.Identity{ID: "user-3", Name: "Customer", Email: "customer@example.com", Role: domain.RoleCustomer}
}

func (f *fixture) product(t *testing.T, id string) domain.Product {
	t.Helper()
	product, err := f.products.Get(id)
	require.NoError(t, err)
	return product
}

func TestCheckoutSingleStore(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 2)

	sales, err := f.recorder.Checkout(customer(), cart)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	sale := sales[0]
	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, "store-1", sale.StoreID)
	assert.Equal(t, "user-3", sale.UserID)
	assert.Equal(t, int64(798), sale.TotalAmount)
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, int64(399), sale.Lines[0].PriceAtSale)
	assert.False(t, sale.CreatedAt.IsZero())

	assert.Equal(t, int32(48), f.product(t, "product-1").Stock)
	assert.Equal(t, 0, cart.LineCount())
}

func TestCheckoutMultiStore(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 2)
	cart.AddItem(f.product(t, "product-4"), 1)

	sales, err := f.recorder.Checkout(customer(), cart)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	// Продажи в порядке первого появления магазинов в корзине.
	assert.Equal(t, "store-1", sales[0].StoreID)
	assert.Equal(t, int64(798), sales[0].TotalAmount)
	assert.Equal(t, "store-2", sales[1].StoreID)
	assert.Equal(t, int64(349), sales[1].TotalAmount)

	// Общая метка времени на всё оформление.
	assert.True(t, sales[0].CreatedAt.Equal(sales[1].CreatedAt))

	assert.Equal(t, int32(48), f.product(t, "product-1").Stock)
	assert.Equal(t, int32(199), f.product(t, "product-4").Stock)
	assert.Equal(t, 0, cart.LineCount())

	// По типизированному событию на каждую продажу.
	pending, err := f.outbox.PullPending(10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for i, msg := range pending {
		assert.Equal(t, "sale.created", msg.EventType)

		var event kafka.SaleEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, kafka.EventTypeSaleCreated, event.EventType)
		assert.Equal(t, sales[i].ID, event.SaleID)
		assert.Equal(t, sales[i].StoreID, event.StoreID)
		assert.Equal(t, "user-3", event.UserID)
		assert.Equal(t, sales[i].TotalAmount, event.TotalAmount)
		assert.True(t, event.Timestamp.Equal(sales[i].CreatedAt))
	}
}

func TestCheckoutNotAuthenticated(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 1)

	_, err := f.recorder.Checkout(domain.Identity{}, cart)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	// Корзина и остатки не тронуты.
	assert.Equal(t, 1, cart.LineCount())
	assert.Equal(t, int32(50), f.product(t, "product-1").Stock)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.recorder.Checkout(customer(), domain.NewCart())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.recorder.Checkout(customer(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 2)
	cart.AddItem(f.product(t, "product-4"), 1)

	// Остаток ушёл под ногами после наполнения корзины.
	require.NoError(t, f.products.AdjustStock("product-4", -200))

	_, err := f.recorder.Checkout(customer(), cart)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ничего не списано и не записано.
	assert.Equal(t, int32(50), f.product(t, "product-1").Stock)
	sales, listErr := f.sales.ListByUser("user-3", 0)
	require.NoError(t, listErr)
	assert.Empty(t, sales)

	// Корзина сохраняется для повторной попытки.
	assert.Equal(t, 2, cart.LineCount())
}

func TestCheckoutDeletedProduct(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 1)
	require.NoError(t, f.products.Delete("product-1"))

	_, err := f.recorder.Checkout(customer(), cart)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCheckoutUsesLivePrice(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 1)

	// Цена поменялась после добавления в корзину.
	updated := f.product(t, "product-1")
	updated.Price = 449
	require.NoError(t, f.products.Update(updated))

	sales, err := f.recorder.Checkout(customer(), cart)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(449), sales[0].TotalAmount)
	assert.Equal(t, int64(449), sales[0].Lines[0].PriceAtSale)
}

func TestCheckoutRecordsActivity(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 1)

	sales, err := f.recorder.Checkout(customer(), cart)
	require.NoError(t, err)

	events, err := f.activity.List("store-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "sale.recorded", events[0].Type)
	assert.Equal(t, sales[0].ID, events[0].Detail)
}

func TestCheckoutSalesQueryableByStoreAndUser(t *testing.T) {
	f := newFixture(t)

	cart := domain.NewCart()
	cart.AddItem(f.product(t, "product-1"), 2)
	cart.AddItem(f.product(t, "product-4"), 1)

	_, err := f.recorder.Checkout(customer(), cart)
	require.NoError(t, err)

	byStore, err := f.sales.ListByStore("store-1", 0)
	require.NoError(t, err)
	assert.Len(t, byStore, 1)

	byUser, err := f.sales.ListByUser("user-3", 0)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}
