package salesfile

import "github.com/shopspring/decimal"

// Record is one decoded sales line.
type Record struct {
	ProductID    int64
	ProductName  string
	CustomerID   int64
	CustomerName string
	Quantity     int
	UnitPrice    decimal.Decimal
	SaleDate     string
}

type value struct {
	integer int64
	text    string
	decimal decimal.Decimal
}
