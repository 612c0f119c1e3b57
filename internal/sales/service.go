package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/vendas-backend/pkg/db"
)

// Service exposes the read side of the sales store.
type Service interface {
	ListSales(ctx context.Context) ([]SaleDTO, error)
}

type saleLister interface {
	ListSaleRows(ctx context.Context) ([]SaleRow, error)
}

type service struct {
	repo saleLister
}

// NewService constructs the read service.
func NewService(repo saleLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

// ListSales returns every sale ordered by id. Totals use the current product
// price, so an import that changes a price reprices historical sales too.
func (s *service) ListSales(ctx context.Context) ([]SaleDTO, error) {
	rows, err := s.repo.ListSaleRows(ctx)
	if err != nil {
		return nil, db.ClassifyError(fmt.Errorf("list sales: %w", err))
	}
	out := make([]SaleDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSaleDTO(row))
	}
	return out, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
