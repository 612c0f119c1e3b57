package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salessvc "github.com/angelmondragon/vendas-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/vendas-backend/pkg/errors"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
	"github.com/angelmondragon/vendas-backend/pkg/types"
)

type stubSalesService struct {
	sales []salessvc.SaleDTO
	err   error
}

func (s stubSalesService) ListSales(context.Context) ([]salessvc.SaleDTO, error) {
	return s.sales, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func serveListSales(svc salessvc.Service) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
	rec := httptest.NewRecorder()
	ListSales(svc, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestListSalesReturnsBareArray(t *testing.T) {
	price := types.NewMoney(decimal.RequireFromString("10.5"))
	total := types.NewMoney(decimal.RequireFromString("31.5"))
	rec := serveListSales(stubSalesService{sales: []salessvc.SaleDTO{{
		ID:        1,
		SaleDate:  "2024-01-15",
		Quantity:  3,
		Product:   salessvc.ProductDTO{ID: 7, Name: "Widget", UnitPrice: price},
		Customer:  salessvc.CustomerDTO{ID: 3, Name: "Ana"},
		LineTotal: total,
	}}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{
		"id_venda": 1,
		"data_venda": "2024-01-15",
		"quantidade": 3,
		"produto": {"id": 7, "nome": "Widget", "valor_unitario": 10.50},
		"cliente": {"id": 3, "nome": "Ana"},
		"valor_total_venda": 31.50
	}]`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"valor_unitario":10.50`)
}

func TestListSalesEmptyIsEmptyArray(t *testing.T) {
	rec := serveListSales(stubSalesService{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListSalesStorageErrorIsGeneric500(t *testing.T) {
	rec := serveListSales(stubSalesService{
		err: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("no such table: vendas"), "database error"),
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "no such table")
}

func TestListSalesConnectionErrorIs503(t *testing.T) {
	rec := serveListSales(stubSalesService{
		err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("connection refused"), "database unavailable"),
	})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(pkgerrors.CodeDependency), body.Error.Code)
}

func TestListSalesNilService(t *testing.T) {
	rec := serveListSales(nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
