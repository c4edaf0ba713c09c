package domain

import "fmt"

// FormatPrice форматирует сумму для отображения: символ валюты и две
// десятичные цифры, как на витрине.
func FormatPrice(amount int64) string {
	return fmt.Sprintf("₹%d.00", amount)
}
