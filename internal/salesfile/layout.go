// Package salesfile decodes the fixed-width daily sales file.
//
// Every line holds one sale. Fields occupy constant character columns
// (0-indexed, half-open) and are trimmed of surrounding whitespace:
//
//	product_id     [0,4)     integer
//	product_name   [4,54)    text
//	customer_id    [54,58)   integer
//	customer_name  [58,108)  text
//	quantity       [108,111) integer
//	unit_price     [111,121) fixed-point, two implied fraction digits
//	sale_date      [121,131) text, YYYY-MM-DD
package salesfile

// RecordWidth is the number of character columns a complete line spans.
const RecordWidth = 131

// Kind selects how a field's raw text is converted.
type Kind int

const (
	KindInteger Kind = iota
	KindText
	KindImpliedDecimal
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindImpliedDecimal:
		return "implied-decimal"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Field names, as reported by DecodeError.
const (
	FieldProductID    = "product_id"
	FieldProductName  = "product_name"
	FieldCustomerID   = "customer_id"
	FieldCustomerName = "customer_name"
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unit_price"
	FieldSaleDate     = "sale_date"
)

// Field describes one column range of the layout and where its converted
// value lands in a Record.
type Field struct {
	Name  string
	Start int
	End   int
	Kind  Kind

	assign func(*Record, value)
}

// Width is the number of characters the field spans.
func (f Field) Width() int {
	return f.End - f.Start
}

// slice returns the field's window of line, clamped to the line length, and
// whether the whole window was present.
func (f Field) slice(line []rune) (string, bool) {
	start, end := f.Start, f.End
	if start > len(line) {
		start = len(line)
	}
	if end > len(line) {
		end = len(line)
	}
	return string(line[start:end]), end-start == f.Width()
}

// Layout is the column table of the sales file, in column order.
var Layout = []Field{
	{Name: FieldProductID, Start: 0, End: 4, Kind: KindInteger,
		assign: func(r *Record, v value) { r.ProductID = v.integer }},
	{Name: FieldProductName, Start: 4, End: 54, Kind: KindText,
		assign: func(r *Record, v value) { r.ProductName = v.text }},
	{Name: FieldCustomerID, Start: 54, End: 58, Kind: KindInteger,
		assign: func(r *Record, v value) { r.CustomerID = v.integer }},
	{Name: FieldCustomerName, Start: 58, End: 108, Kind: KindText,
		assign: func(r *Record, v value) { r.CustomerName = v.text }},
	{Name: FieldQuantity, Start: 108, End: 111, Kind: KindInteger,
		assign: func(r *Record, v value) { r.Quantity = int(v.integer) }},
	{Name: FieldUnitPrice, Start: 111, End: 121, Kind: KindImpliedDecimal,
		assign: func(r *Record, v value) { r.UnitPrice = v.decimal }},
	{Name: FieldSaleDate, Start: 121, End: 131, Kind: KindDate,
		assign: func(r *Record, v value) { r.SaleDate = v.text }},
}

// FieldByName looks up a layout entry.
func FieldByName(name string) (Field, bool) {
	for _, f := range Layout {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
