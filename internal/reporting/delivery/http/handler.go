package http

import (
	"net/http"

	"github.com/gorilla/mux"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/httputil"
	invoicedomain "github.com/amrani/pharmacy-backend/internal/invoice/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	orderdomain "github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/reporting/usecase/query"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// ReportingHandler serves read-only dashboard statistics
type ReportingHandler struct {
	statsHandler *query.GetStatsHandler
}

// NewReportingHandler creates a new reporting handler
func NewReportingHandler(
	medications meddomain.MedicationRepository,
	clients clientdomain.ClientRepository,
	suppliers supplierdomain.SupplierRepository,
	invoices invoicedomain.InvoiceRepository,
	orders orderdomain.OrderRepository,
) *ReportingHandler {
	return &ReportingHandler{
		statsHandler: query.NewGetStatsHandler(medications, clients, suppliers, invoices, orders, nil),
	}
}

// GetStats handles GET /stats
func (h *ReportingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get stats")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: stats})
}

// RegisterRoutes registers all reporting routes
func (h *ReportingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/stats", h.GetStats).Methods("GET")
}
