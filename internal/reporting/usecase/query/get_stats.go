package query

import (
	"fmt"
	"time"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	invoicedomain "github.com/amrani/pharmacy-backend/internal/invoice/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	orderdomain "github.com/amrani/pharmacy-backend/internal/order/domain"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

// GetStatsQuery represents the query to get dashboard statistics
type GetStatsQuery struct{}

// DashboardStats represents pharmacy-wide statistics
type DashboardStats struct {
	TotalMedications int64  `json:"total_medicaments"`
	TotalClients     int64  `json:"total_clients"`
	TotalSuppliers   int64  `json:"total_fournisseurs"`
	TotalInvoices    int64  `json:"total_factures"`
	TotalOrders      int64  `json:"total_commandes"`
	LowStockCount    int64  `json:"medicaments_stock_faible"`
	MonthlyRevenue   string `json:"chiffre_affaires_mois"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	medications meddomain.MedicationRepository
	clients     clientdomain.ClientRepository
	suppliers   supplierdomain.SupplierRepository
	invoices    invoicedomain.InvoiceRepository
	orders      orderdomain.OrderRepository
	now         func() time.Time
}

// NewGetStatsHandler creates a new get stats handler.
// now is the injected clock; nil falls back to time.Now.
func NewGetStatsHandler(
	medications meddomain.MedicationRepository,
	clients clientdomain.ClientRepository,
	suppliers supplierdomain.SupplierRepository,
	invoices invoicedomain.InvoiceRepository,
	orders orderdomain.OrderRepository,
	now func() time.Time,
) *GetStatsHandler {
	if now == nil {
		now = time.Now
	}
	return &GetStatsHandler{
		medications: medications,
		clients:     clients,
		suppliers:   suppliers,
		invoices:    invoices,
		orders:      orders,
		now:         now,
	}
}

// Handle executes the get stats query. Monthly revenue covers invoices
// issued since the first day of the current month.
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalMedications, err = h.medications.Count(); err != nil {
		return nil, fmt.Errorf("failed to count medications: %w", err)
	}
	if stats.TotalClients, err = h.clients.Count(); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if stats.TotalSuppliers, err = h.suppliers.Count(); err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}
	if stats.TotalInvoices, err = h.invoices.Count(); err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	if stats.TotalOrders, err = h.orders.Count(); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	lowStock, err := h.medications.FindAll(meddomain.Filter{LowStock: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock medications: %w", err)
	}
	stats.LowStockCount = int64(len(lowStock))

	now := h.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := h.invoices.RevenueSince(monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}
	stats.MonthlyRevenue = revenue.StringFixed(2)

	return stats, nil
}
