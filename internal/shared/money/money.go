package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSON renders an amount as an exact JSON number with two decimals.
func JSON(amount decimal.Decimal) json.Number {
	return json.Number(amount.StringFixed(2))
}
