// README: Common money value object used across modules.
package types

// Money is an amount in whole currency units (rental rates are quoted in whole SAR).
type Money struct {
	Amount   int64
	Currency string
}

// SAR builds a Money in Saudi Riyal, the only currency the platform quotes in.
func SAR(amount int64) Money {
	return Money{Amount: amount, Currency: "SAR"}
}
