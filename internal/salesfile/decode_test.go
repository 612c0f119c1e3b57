package salesfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLine(productID, productName, customerID, customerName, qty, price, date string) string {
	return fmt.Sprintf("%-4s%-50s%-4s%-50s%-3s%10s%-10s",
		productID, productName, customerID, customerName, qty, price, date)
}

func TestLayoutIsContiguous(t *testing.T) {
	next := 0
	for _, f := range Layout {
		assert.Equal(t, next, f.Start, "field %s should start where the previous one ended", f.Name)
		assert.Greater(t, f.Width(), 0, "field %s has no width", f.Name)
		next = f.End
	}
	assert.Equal(t, RecordWidth, next)

	price, ok := FieldByName(FieldUnitPrice)
	require.True(t, ok)
	assert.Equal(t, 10, price.Width())
	assert.Equal(t, KindImpliedDecimal, price.Kind)
}

func TestDecode_ColumnRanges(t *testing.T) {
	line := buildLine("7", "Caneta Azul", "42", "Maria Silva", "3", "0001050", "2025-10-01")
	require.Len(t, []rune(line), RecordWidth)

	rec, err := Decode(line)
	require.NoError(t, err)

	assert.Equal(t, int64(7), rec.ProductID)
	assert.Equal(t, "Caneta Azul", rec.ProductName)
	assert.Equal(t, int64(42), rec.CustomerID)
	assert.Equal(t, "Maria Silva", rec.CustomerName)
	assert.Equal(t, 3, rec.Quantity)
	assert.True(t, rec.UnitPrice.Equal(decimal.RequireFromString("10.50")), "got price %s", rec.UnitPrice)
	assert.Equal(t, "2025-10-01", rec.SaleDate)
}

func TestDecode_IsDeterministic(t *testing.T) {
	line := buildLine("12", "Caderno", "3", "Jose", "10", "0000000899", "2025-10-02")

	first, err := Decode(line)
	require.NoError(t, err)
	second, err := Decode(line)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "8.99", second.UnitPrice.StringFixed(2))
}

func TestDecode_CharacterColumns(t *testing.T) {
	line := buildLine("1", "Pão de Açúcar", "2", "João Conceição", "1", "0000000150", "2025-10-01")

	rec, err := Decode(line)
	require.NoError(t, err)
	assert.Equal(t, "Pão de Açúcar", rec.ProductName)
	assert.Equal(t, "João Conceição", rec.CustomerName)
	assert.Equal(t, int64(2), rec.CustomerID)
	assert.Equal(t, "1.50", rec.UnitPrice.StringFixed(2))
}

func TestDecode_AcceptsUncheckedDates(t *testing.T) {
	rec, err := Decode(buildLine("1", "Lapis", "2", "Ana", "1", "100", "2025-13-45"))
	require.NoError(t, err)
	assert.Equal(t, "2025-13-45", rec.SaleDate)
}

func TestDecode_ImpliedDecimal(t *testing.T) {
	tests := []struct {
		digits string
		want   string
	}{
		{digits: "0001050", want: "10.50"},
		{digits: "0000000000", want: "0.00"},
		{digits: "5", want: "0.05"},
		{digits: "99", want: "0.99"},
		{digits: "123456789", want: "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			rec, err := Decode(buildLine("1", "Item", "1", "Cliente", "1", tt.digits, "2025-10-01"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.UnitPrice.StringFixed(2))
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := buildLine("7", "Caneta", "42", "Maria", "3", "0001050", "2025-10-01")

	tests := []struct {
		name    string
		line    string
		field   string
		wantErr error
	}{
		{
			name:    "non numeric product id",
			line:    buildLine("AB", "Caneta", "42", "Maria", "3", "0001050", "2025-10-01"),
			field:   FieldProductID,
			wantErr: ErrNotInteger,
		},
		{
			name:    "blank customer id",
			line:    buildLine("7", "Caneta", "", "Maria", "3", "0001050", "2025-10-01"),
			field:   FieldCustomerID,
			wantErr: ErrNotInteger,
		},
		{
			name:    "non numeric quantity",
			line:    buildLine("7", "Caneta", "42", "Maria", "x", "0001050", "2025-10-01"),
			field:   FieldQuantity,
			wantErr: ErrNotInteger,
		},
		{
			name:    "truncated price window",
			line:    valid[:115],
			field:   FieldUnitPrice,
			wantErr: ErrPriceWidth,
		},
		{
			name:    "punctuated price",
			line:    buildLine("7", "Caneta", "42", "Maria", "3", "10.50", "2025-10-01"),
			field:   FieldUnitPrice,
			wantErr: ErrPriceNotDigit,
		},
		{
			name:    "blank price",
			line:    buildLine("7", "Caneta", "42", "Maria", "3", "", "2025-10-01"),
			field:   FieldUnitPrice,
			wantErr: ErrPriceNotDigit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.line)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %T", err)
			assert.Equal(t, tt.field, decodeErr.Field)
			assert.Equal(t, tt.line, decodeErr.Line)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	rec := Record{
		ProductID:    7,
		ProductName:  "Caneta Azul",
		CustomerID:   42,
		CustomerName: "Maria Silva",
		Quantity:     3,
		UnitPrice:    decimal.RequireFromString("10.50"),
		SaleDate:     "2025-10-01",
	}

	line, err := Encode(rec)
	require.NoError(t, err)
	require.Len(t, []rune(line), RecordWidth)
	assert.Equal(t, "0007", line[0:4])
	assert.Equal(t, "0000001050", line[111:121])

	decoded, err := Decode(line)
	require.NoError(t, err)
	assert.True(t, rec.UnitPrice.Equal(decoded.UnitPrice))
	decoded.UnitPrice = rec.UnitPrice
	assert.Equal(t, rec, decoded)
}

func TestEncode_RejectsValuesWiderThanField(t *testing.T) {
	_, err := Encode(Record{ProductID: 12345, ProductName: "x", CustomerID: 1, CustomerName: "y", Quantity: 1, UnitPrice: decimal.NewFromInt(1), SaleDate: "2025-10-01"})
	require.ErrorIs(t, err, ErrFieldTooWide)

	_, err = Encode(Record{ProductID: 1, ProductName: strings.Repeat("n", 51), CustomerID: 1, CustomerName: "y", Quantity: 1, UnitPrice: decimal.NewFromInt(1), SaleDate: "2025-10-01"})
	require.ErrorIs(t, err, ErrFieldTooWide)

	_, err = Encode(Record{ProductID: 1, ProductName: "x", CustomerID: 1, CustomerName: "y", Quantity: 1, UnitPrice: decimal.RequireFromString("1.005"), SaleDate: "2025-10-01"})
	require.Error(t, err)
}
