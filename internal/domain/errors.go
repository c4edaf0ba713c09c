package domain

import "errors"

var (
	// ErrStoreNotFound возвращается, если магазин не найден в каталоге.
	ErrStoreNotFound = errors.New("store not found")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrSaleNotFound возвращается, если продажа не найдена в журнале.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrStoreAlreadyExists — попытка создать магазин с занятым ID.
	ErrStoreAlreadyExists = errors.New("store already exists")
	// ErrProductAlreadyExists — попытка создать товар с занятым ID.
	ErrProductAlreadyExists = errors.New("product already exists")
	// ErrSaleAlreadyExists — попытка повторно записать продажу с тем же ID.
	ErrSaleAlreadyExists = errors.New("sale already exists")

	// Ошибка отсутствующего названия магазина.
	ErrStoreNameRequired = errors.New("store name is required")
	// Ошибка отсутствующего адреса магазина.
	ErrStoreAddressRequired = errors.New("store address is required")
	// Ошибка отсутствующего города магазина.
	ErrStoreCityRequired = errors.New("store city is required")
	// Ошибка отсутствующего магазина-владельца у товара.
	ErrProductStoreRequired = errors.New("product store_id is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductStockNegative = errors.New("product stock must be non-negative")

	// Ошибка отсутствующего магазина в продаже.
	ErrSaleStoreRequired = errors.New("sale store_id is required")
	// Ошибка отсутствующего покупателя в продаже.
	ErrSaleUserRequired = errors.New("sale user_id is required")
	// Ошибка продажи без позиций.
	ErrSaleLinesRequired = errors.New("sale must contain at least one line")
	// Ошибка некорректного количества в позиции продажи (<= 0).
	ErrSaleLineQtyInvalid = errors.New("sale line quantity must be greater than zero")
	// Ошибка отрицательной цены в позиции продажи.
	ErrSaleLinePriceInvalid = errors.New("sale line price must be non-negative")
	// Ошибка несоответствия итога продажи сумме позиций.
	ErrSaleAmountMismatch = errors.New("sale total does not match lines sum")

	// ErrInsufficientStock — остатка недостаточно для списания.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidCredentials — email не соответствует ни одной известной учётке.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated — операция требует текущую identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized — у identity нет прав на операцию.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation — входные данные не проходят проверку инвариантов.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCart — оформление пустой корзины.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")

	// Ошибка отсутствующего idempotency-key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// Ошибка отсутствующего хэша запроса для idempotency-записи.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyHashMismatch — ключ уже использован с другим запросом.
	ErrIdempotencyHashMismatch = errors.New("idempotency request hash mismatch")
	// ErrIdempotencyKeyAlreadyExists — запись по ключу уже создана.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyKeyNotFound — записи по ключу нет.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)

// IsNotFound проверяет, относится ли ошибка к классу «не найдено».
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSaleNotFound)
}
