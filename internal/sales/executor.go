package sales

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/vendas-backend/internal/salesfile"
	"github.com/angelmondragon/vendas-backend/pkg/db"
	"github.com/angelmondragon/vendas-backend/pkg/db/models"
)

// Applier writes one decoded record inside an open transaction.
type Applier interface {
	Apply(ctx context.Context, tx *gorm.DB, rec salesfile.Record) error
}

// Executor applies records in dimension-before-fact order: the product and
// customer upserts always run before the sale that references them.
type Executor struct {
	repo *Repository
}

// NewExecutor returns an Executor. The repository's own connection is never
// used; every write goes through the transaction passed to Apply.
func NewExecutor(repo *Repository) *Executor {
	if repo == nil {
		repo = NewRepository(nil)
	}
	return &Executor{repo: repo}
}

// Apply upserts the product, upserts the customer and appends the sale.
// Errors are classified and returned as-is; nothing is retried.
func (e *Executor) Apply(ctx context.Context, tx *gorm.DB, rec salesfile.Record) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	repo := e.repo.WithTx(tx)

	product := &models.Product{ID: rec.ProductID, Name: rec.ProductName, UnitPrice: rec.UnitPrice}
	if err := repo.UpsertProduct(ctx, product); err != nil {
		return db.ClassifyError(fmt.Errorf("upsert product %d: %w", rec.ProductID, err))
	}

	customer := &models.Customer{ID: rec.CustomerID, Name: rec.CustomerName}
	if err := repo.UpsertCustomer(ctx, customer); err != nil {
		return db.ClassifyError(fmt.Errorf("upsert customer %d: %w", rec.CustomerID, err))
	}

	sale := &models.Sale{
		ProductID:  rec.ProductID,
		CustomerID: rec.CustomerID,
		Quantity:   rec.Quantity,
		SaleDate:   rec.SaleDate,
	}
	if err := repo.InsertSale(ctx, sale); err != nil {
		return db.ClassifyError(fmt.Errorf("insert sale: %w", err))
	}
	return nil
}
