package dto

import "github.com/shopspring/decimal"

// Money renders an amount in pounds with pence.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
