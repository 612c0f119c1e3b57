package sales

import (
	"github.com/angelmondragon/vendas-backend/pkg/types"
)

// ProductDTO is the product embedded in each sale.
type ProductDTO struct {
	ID        int64       `json:"id"`
	Name      string      `json:"nome"`
	UnitPrice types.Money `json:"valor_unitario"`
}

// CustomerDTO is the customer embedded in each sale.
type CustomerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// SaleDTO is one element of the GET /vendas payload.
type SaleDTO struct {
	ID        int64       `json:"id_venda"`
	SaleDate  string      `json:"data_venda"`
	Quantity  int         `json:"quantidade"`
	Product   ProductDTO  `json:"produto"`
	Customer  CustomerDTO `json:"cliente"`
	LineTotal types.Money `json:"valor_total_venda"`
}

// toSaleDTO prices the line with the product's current unit price.
func toSaleDTO(row SaleRow) SaleDTO {
	total := row.UnitPrice.Mul(decimalFromInt(row.Quantity))
	return SaleDTO{
		ID:       row.SaleID,
		SaleDate: row.SaleDate,
		Quantity: row.Quantity,
		Product: ProductDTO{
			ID:        row.ProductID,
			Name:      row.ProductName,
			UnitPrice: types.NewMoney(row.UnitPrice),
		},
		Customer: CustomerDTO{
			ID:   row.CustomerID,
			Name: row.CustomerName,
		},
		LineTotal: types.NewMoney(total),
	}
}
