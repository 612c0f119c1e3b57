package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vendas-backend/internal/sales"
	"github.com/angelmondragon/vendas-backend/pkg/config"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSalesService struct{}

func (stubSalesService) ListSales(context.Context) ([]sales.SaleDTO, error) {
	return []sales.SaleDTO{{ID: 1, SaleDate: "2024-01-15", Quantity: 2}}, nil
}

func newTestRouter(reg *prometheus.Registry) http.Handler {
	return NewRouter(Params{
		Config:       &config.Config{App: config.AppConfig{Env: "dev"}},
		Logger:       logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		DBPinger:     stubPinger{},
		SalesService: stubSalesService{},
		Registry:     reg,
	})
}

func TestRouterServesSales(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendas", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "["), "expected bare array, got %s", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(nil)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterRejectsWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vendas", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterCORSAllowsAnyOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/vendas", nil)
	req.Header.Set("Origin", "http://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	newTestRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(reg)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vendas", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vendas_http_requests_total{method="GET",route="/vendas",status="200"} 1`)
}
