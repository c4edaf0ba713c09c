package domain

import "time"

// SaleLine фиксирует одну позицию продажи. PriceAtSale — снимок цены
// на момент оформления: последующие изменения Product.Price не меняют
// исторические продажи.
type SaleLine struct {
	ProductID   string
	Quantity    int32
	PriceAtSale int64
}

// Sale — неизменяемая запись о продаже одного магазина. Смешанная
// корзина порождает по одной продаже на каждый магазин.
type Sale struct {
	ID          string
	StoreID     string
	UserID      string
	Lines       []SaleLine
	TotalAmount int64
	CreatedAt   time.Time
}

// ValidateInvariants проверяет инварианты продажи и возвращает список замечаний.
func (s *Sale) ValidateInvariants() []error {
	var errs []error

	if s.StoreID == "" {
		errs = append(errs, ErrSaleStoreRequired)
	}
	if s.UserID == "" {
		errs = append(errs, ErrSaleUserRequired)
	}
	if len(s.Lines) == 0 {
		errs = append(errs, ErrSaleLinesRequired)
	}

	// Сверяем итог продажи с суммой позиций: qty * priceAtSale.
	var calc int64
	for _, line := range s.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, ErrSaleLineQtyInvalid)
		}
		if line.PriceAtSale < 0 {
			errs = append(errs, ErrSaleLinePriceInvalid)
		}
		calc += int64(line.Quantity) * line.PriceAtSale
	}
	if calc != s.TotalAmount {
		errs = append(errs, ErrSaleAmountMismatch)
	}

	return errs
}
