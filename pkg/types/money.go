package types

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount that marshals to a JSON number with exactly two
// fraction digits, e.g. 10.50.
type Money decimal.Decimal

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money(d.Round(2))
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Quoted amounts are accepted.
func (m *Money) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(data), `"`)
	d, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = Money(d)
	return nil
}
