package models

import "github.com/shopspring/decimal"

// Product is the product dimension keyed by the id carried in the sales file.
type Product struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name      string          `gorm:"column:nome;not null"`
	UnitPrice decimal.Decimal `gorm:"column:valor_unitario;type:numeric(12,2);not null"`
}

func (Product) TableName() string {
	return "produtos"
}
