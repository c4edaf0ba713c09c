package domain

import "sync"

// CartLine — пара (снимок товара, количество). Инвариант:
// 1 <= Quantity <= Product.Stock; количества зажимаются, а не отклоняются.
type CartLine struct {
	Product  Product
	Quantity int32
}

// StorePartition — группа позиций корзины одного магазина, единица
// создания продажи при оформлении.
type StorePartition struct {
	StoreID string
	Lines   []CartLine
}

// Cart накапливает выбранные товары. Ключ — идентификатор товара:
// не более одной позиции на товар, повторное добавление увеличивает
// количество существующей позиции.
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{}
}

// clampQuantity зажимает количество в [1, stock].
func clampQuantity(qty, stock int32) int32 {
	if qty < 1 {
		qty = 1
	}
	if qty > stock {
		qty = stock
	}
	return qty
}

// AddItem добавляет товар в корзину. Если позиция уже есть, количество
// увеличивается; итоговое количество никогда не превышает остаток и не
// опускается ниже единицы. Товар без остатка в корзину не попадает.
func (c *Cart) AddItem(product Product, qty int32) {
	if product.Stock < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity+qty, c.lines[i].Product.Stock)
			return
		}
	}

	c.lines = append(c.lines, CartLine{
		Product:  product,
		Quantity: clampQuantity(qty, product.Stock),
	})
}

// SetQuantity выставляет количество позиции, зажимая его в допустимых
// границах. Возвращает false, если позиции с таким товаром нет.
// Удаление позиции выполняется только явным RemoveItem, ноль зажимается
// до единицы.
func (c *Cart) SetQuantity(productID string, qty int32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = clampQuantity(qty, c.lines[i].Product.Stock)
			return true
		}
	}
	return false
}

// RemoveItem удаляет позицию, если она есть.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total пересчитывает сумму корзины по текущим позициям при каждом вызове.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// LineCount возвращает число различных позиций (для бейджа в шапке),
// а не суммарное количество единиц.
func (c *Cart) LineCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines возвращает копию позиций в порядке добавления.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]CartLine, len(c.lines))
	copy(result, c.lines)
	return result
}

// PartitionByStore группирует позиции по магазину-владельцу. Партиции
// упорядочены по первому появлению магазина в корзине, позиции внутри
// партиции сохраняют порядок добавления.
func (c *Cart) PartitionByStore() []StorePartition {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := make(map[string]int)
	var partitions []StorePartition
	for _, line := range c.lines {
		storeID := line.Product.StoreID
		i, ok := index[storeID]
		if !ok {
			i = len(partitions)
			index[storeID] = i
			partitions = append(partitions, StorePartition{StoreID: storeID})
		}
		partitions[i].Lines = append(partitions[i].Lines, line)
	}
	return partitions
}
