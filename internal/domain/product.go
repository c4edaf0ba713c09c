package domain

import "time"

// Product описывает товар каталога. Цена хранится в целых рупиях:
// все наблюдаемые цены целочисленные, дробная часть появляется только
// при форматировании для отображения.
type Product struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Price       int64
	Category    string
	Image       string
	Stock       int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.StoreID == "" {
		errs = append(errs, ErrProductStoreRequired)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrProductStockNegative)
	}

	return errs
}
