package domain

import "time"

// Store описывает магазин витрины.
type Store struct {
	ID      string
	Name    string
	Address string
	City    string
	Phone   string
	Image   string
	// Managers — идентификаторы менеджеров, закреплённых за магазином.
	Managers  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет обязательные поля магазина.
func (s *Store) ValidateInvariants() []error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, ErrStoreNameRequired)
	}
	if s.Address == "" {
		errs = append(errs, ErrStoreAddressRequired)
	}
	if s.City == "" {
		errs = append(errs, ErrStoreCityRequired)
	}

	return errs
}
