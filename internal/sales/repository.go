package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/vendas-backend/pkg/db/models"
)

// SaleRow is one sale joined with its product and customer.
type SaleRow struct {
	SaleID       int64
	SaleDate     string
	Quantity     int
	ProductID    int64
	ProductName  string
	UnitPrice    decimal.Decimal
	CustomerID   int64
	CustomerName string
}

const listSalesQuery = `
SELECT v.id AS sale_id,
       CAST(v.data_venda AS TEXT) AS sale_date,
       v.quantidade AS quantity,
       p.id AS product_id,
       p.nome AS product_name,
       p.valor_unitario AS unit_price,
       c.id AS customer_id,
       c.nome AS customer_name
FROM vendas v
JOIN produtos p ON v.produto_id = p.id
JOIN clientes c ON v.cliente_id = c.id
ORDER BY v.id
`

// Repository persists products, customers and sales.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// UpsertProduct inserts the product or overwrites name and price of the
// existing row with the same id.
func (r *Repository) UpsertProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nome", "valor_unitario"}),
		}).
		Create(product).
		Error
}

// UpsertCustomer inserts the customer or overwrites the name of the existing
// row with the same id.
func (r *Repository) UpsertCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nome"}),
		}).
		Create(customer).
		Error
}

// InsertSale appends a sale row. There is no deduplication.
func (r *Repository) InsertSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// ListSaleRows returns every sale joined with its dimensions, ordered by id.
func (r *Repository) ListSaleRows(ctx context.Context) ([]SaleRow, error) {
	rows := []SaleRow{}
	if err := r.db.WithContext(ctx).Raw(listSalesQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
