package controllers

import (
	"net/http"

	"github.com/angelmondragon/vendas-backend/api/responses"
	salessvc "github.com/angelmondragon/vendas-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/vendas-backend/pkg/errors"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
)

// ListSales returns every sale as a bare JSON array ordered by sale id.
func ListSales(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		sales, err := svc.ListSales(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sales == nil {
			sales = []salessvc.SaleDTO{}
		}

		responses.WriteJSON(w, http.StatusOK, sales)
	}
}
