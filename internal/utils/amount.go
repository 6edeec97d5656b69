package utils

import "fmt"

// FormatAmount keeps consistent decimal formatting for money fields.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// TransferTotal is base price plus tax and surcharge; the transfer rule
// stores all three separately.
func TransferTotal(price, tax, surcharge float64) float64 {
	return price + tax + surcharge
}
