package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/vendas-backend/api/controllers"
	"github.com/angelmondragon/vendas-backend/api/middleware"
	"github.com/angelmondragon/vendas-backend/internal/sales"
	"github.com/angelmondragon/vendas-backend/pkg/config"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
	"github.com/angelmondragon/vendas-backend/pkg/metrics"
)

// Params collects the dependencies of the HTTP surface. RedisPinger and
// Registry are optional.
type Params struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	SalesService sales.Service
	Registry     *prometheus.Registry
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	logg := p.Logger

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(p.Registry)))
		r.Method(http.MethodGet, "/metrics", metrics.Handler(p.Registry))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, logg, p.DBPinger, p.RedisPinger))
	})

	r.Get("/vendas", controllers.ListSales(p.SalesService, logg))

	return r
}
