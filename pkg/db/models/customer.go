package models

// Customer is the customer dimension keyed by the id carried in the sales file.
type Customer struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name string `gorm:"column:nome;not null"`
}

func (Customer) TableName() string {
	return "clientes"
}
