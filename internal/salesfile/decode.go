package salesfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decode converts one fixed-width line into a Record. It has no side effects
// and always returns the same result for the same line. Calendar validity of
// the sale date is not checked.
func Decode(line string) (Record, error) {
	runes := []rune(line)

	var rec Record
	for _, f := range Layout {
		raw, complete := f.slice(runes)
		v, err := f.convert(raw, complete)
		if err != nil {
			return Record{}, &DecodeError{Field: f.Name, Line: line, Err: err}
		}
		f.assign(&rec, v)
	}
	return rec, nil
}

func (f Field) convert(raw string, complete bool) (value, error) {
	trimmed := strings.TrimSpace(raw)
	switch f.Kind {
	case KindInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return value{}, fmt.Errorf("%w: %q", ErrNotInteger, trimmed)
		}
		return value{integer: n}, nil
	case KindImpliedDecimal:
		if !complete {
			return value{}, fmt.Errorf("%w: got %d", ErrPriceWidth, len([]rune(raw)))
		}
		d, err := parseImpliedDecimal(trimmed)
		if err != nil {
			return value{}, err
		}
		return value{decimal: d}, nil
	default:
		return value{text: trimmed}, nil
	}
}

// parseImpliedDecimal places the decimal point before the last two digits.
// Short inputs are left-padded so "5" reads as 0.05.
func parseImpliedDecimal(digits string) (decimal.Decimal, error) {
	if digits == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrPriceNotDigit)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrPriceNotDigit, digits)
		}
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}
	split := len(digits) - 2
	return decimal.NewFromString(digits[:split] + "." + digits[split:])
}

// Encode renders rec in the fixed-width layout: integers zero-padded, text
// left-aligned, the price as ten digits of cents.
func Encode(rec Record) (string, error) {
	var b strings.Builder
	for _, f := range Layout {
		s, err := f.format(rec)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", f.Name, err)
		}
		if n := len([]rune(s)); n > f.Width() {
			return "", fmt.Errorf("encode %s: %w: %d > %d", f.Name, ErrFieldTooWide, n, f.Width())
		}
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", f.Width()-len([]rune(s))))
	}
	return b.String(), nil
}

func (f Field) format(rec Record) (string, error) {
	switch f.Name {
	case FieldProductID:
		return padInt(rec.ProductID, f.Width())
	case FieldProductName:
		return rec.ProductName, nil
	case FieldCustomerID:
		return padInt(rec.CustomerID, f.Width())
	case FieldCustomerName:
		return rec.CustomerName, nil
	case FieldQuantity:
		return padInt(int64(rec.Quantity), f.Width())
	case FieldUnitPrice:
		if rec.UnitPrice.IsNegative() {
			return "", errors.New("negative price")
		}
		cents := rec.UnitPrice.Shift(2)
		if !cents.Equal(cents.Truncate(0)) {
			return "", errors.New("price has more than two fraction digits")
		}
		return padInt(cents.IntPart(), f.Width())
	case FieldSaleDate:
		return rec.SaleDate, nil
	default:
		return "", fmt.Errorf("unknown field %q", f.Name)
	}
}

func padInt(n int64, width int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative value %d", n)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}
