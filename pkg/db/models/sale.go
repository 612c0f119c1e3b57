package models

// Sale is one append-only fact row. SaleDate holds the canonical YYYY-MM-DD
// text read from the file.
type Sale struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64  `gorm:"column:produto_id;not null"`
	CustomerID int64  `gorm:"column:cliente_id;not null"`
	Quantity   int    `gorm:"column:quantidade;not null"`
	SaleDate   string `gorm:"column:data_venda;not null"`
}

func (Sale) TableName() string {
	return "vendas"
}
