package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// helper для товара с заданным магазином, ценой и остатком.
func makeProduct(id, storeID string, price int64, stock int32) domain.Product {
	return domain.Product{
		ID:      id,
		StoreID: storeID,
		Name:    "Product " + id,
		Price:   price,
		Stock:   stock,
	}
}

func TestCartAddItem_NewLine(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 399, 50), 2)

	if got := cart.LineCount(); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
	if got := cart.Total(); got != 798 {
		t.Fatalf("expected total 798, got %d", got)
	}
}

func TestCartAddItem_MergesExistingLine(t *testing.T) {
	cart := domain.NewCart()
	product := makeProduct("product-1", "store-1", 399, 50)

	cart.AddItem(product, 2)
	cart.AddItem(product, 3)

	if got := cart.LineCount(); got != 1 {
		t.Fatalf("expected merged line, got %d lines", got)
	}
	if got := cart.Total(); got != 399*5 {
		t.Fatalf("expected total %d, got %d", 399*5, got)
	}
}

func TestCartAddItem_ClampsToStock(t *testing.T) {
	cart := domain.NewCart()
	product := makeProduct("product-1", "store-1", 100, 3)

	cart.AddItem(product, 10)

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %d", lines[0].Quantity)
	}

	// Повторное добавление не должно пробить потолок остатка.
	cart.AddItem(product, 10)
	if got := cart.Lines()[0].Quantity; got != 3 {
		t.Fatalf("expected quantity to stay 3, got %d", got)
	}
}

func TestCartAddItem_TotalProperty(t *testing.T) {
	cart := domain.NewCart()
	product := makeProduct("product-1", "store-1", 399, 5)

	before := cart.Total()
	cart.AddItem(product, 9)
	after := cart.Total()

	// total растёт ровно на price * min(qty, stock).
	if after-before != 399*5 {
		t.Fatalf("expected delta %d, got %d", 399*5, after-before)
	}
}

func TestCartAddItem_ZeroStockIgnored(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 399, 0), 1)

	if got := cart.LineCount(); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
}

func TestCartSetQuantity_ClampsBounds(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 100, 10), 5)

	if !cart.SetQuantity("product-1", 0) {
		t.Fatal("expected SetQuantity to find the line")
	}
	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}

	cart.SetQuantity("product-1", 25)
	if got := cart.Lines()[0].Quantity; got != 10 {
		t.Fatalf("expected quantity clamped to 10, got %d", got)
	}

	if cart.SetQuantity("missing", 1) {
		t.Fatal("expected SetQuantity to report missing line")
	}
}

func TestCartRemoveItem(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 100, 10), 1)
	cart.AddItem(makeProduct("product-2", "store-1", 200, 10), 1)

	cart.RemoveItem("product-1")

	lines := cart.Lines()
	if len(lines) != 1 || lines[0].Product.ID != "product-2" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	// Удаление отсутствующей позиции — no-op.
	cart.RemoveItem("missing")
	if got := cart.LineCount(); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
}

func TestCartClear_Idempotent(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 100, 10), 2)

	cart.Clear()
	cart.Clear()

	if cart.Total() != 0 || cart.LineCount() != 0 {
		t.Fatalf("expected empty cart, total=%d lines=%d", cart.Total(), cart.LineCount())
	}
}

func TestCartPartitionByStore_Order(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 399, 50), 2)
	cart.AddItem(makeProduct("product-4", "store-2", 349, 200), 1)
	cart.AddItem(makeProduct("product-2", "store-1", 249, 100), 1)

	partitions := cart.PartitionByStore()
	if len(partitions) != 2 {
		t.Fatalf("expected 2 partitions, got %d", len(partitions))
	}

	// Партиции упорядочены по первому появлению магазина.
	if partitions[0].StoreID != "store-1" || partitions[1].StoreID != "store-2" {
		t.Fatalf("unexpected partition order: %s, %s", partitions[0].StoreID, partitions[1].StoreID)
	}
	if len(partitions[0].Lines) != 2 {
		t.Fatalf("expected 2 lines for store-1, got %d", len(partitions[0].Lines))
	}
	if partitions[0].Lines[0].Product.ID != "product-1" || partitions[0].Lines[1].Product.ID != "product-2" {
		t.Fatal("expected insertion order preserved inside partition")
	}
}

func TestCartPartitionByStore_SumsMatchTotal(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem(makeProduct("product-1", "store-1", 399, 50), 2)
	cart.AddItem(makeProduct("product-4", "store-2", 349, 200), 3)
	cart.AddItem(makeProduct("product-7", "store-3", 299, 40), 1)

	var sum int64
	for _, partition := range cart.PartitionByStore() {
		for _, line := range partition.Lines {
			sum += line.Product.Price * int64(line.Quantity)
		}
	}

	if sum != cart.Total() {
		t.Fatalf("partition sums %d do not match total %d", sum, cart.Total())
	}
}
