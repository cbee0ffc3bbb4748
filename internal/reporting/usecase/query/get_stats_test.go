package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	clientrepo "github.com/amrani/pharmacy-backend/internal/client/repository"
	invoicedomain "github.com/amrani/pharmacy-backend/internal/invoice/domain"
	invoicerepo "github.com/amrani/pharmacy-backend/internal/invoice/repository"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	medrepo "github.com/amrani/pharmacy-backend/internal/medication/repository"
	orderrepo "github.com/amrani/pharmacy-backend/internal/order/repository"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	supplierrepo "github.com/amrani/pharmacy-backend/internal/supplier/repository"
)

func TestGetStats(t *testing.T) {
	medications := medrepo.NewMemoryMedicationRepository()
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-1",
		Name:  "Paracetamol",
		Price: decimal.RequireFromString("8.00"),
		Stock: 2,
	}))
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-2",
		Name:  "Ibuprofen",
		Price: decimal.RequireFromString("6.00"),
		Stock: 50,
	}))

	clients := clientrepo.NewMemoryClientRepository()
	require.NoError(t, clients.Create(&clientdomain.Client{ID: 1, Name: "Dupont"}))

	suppliers := supplierrepo.NewMemorySupplierRepository()
	require.NoError(t, suppliers.Create(&supplierdomain.Supplier{ID: 1, Name: "Pharma Dist"}))

	invoices := invoicerepo.NewMemoryInvoiceRepository(medications)
	orders := orderrepo.NewMemoryOrderRepository(medications)

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// one invoice this month, one from last month
	require.NoError(t, invoices.Create(&invoicedomain.Invoice{
		ClientID: 1,
		Total:    decimal.RequireFromString("30.00"),
		IssuedAt: now.AddDate(0, 0, -1),
		Lines: []invoicedomain.InvoiceLine{
			{MedicationID: "med-2", Quantity: 5, UnitPrice: decimal.RequireFromString("6.00"), Subtotal: decimal.RequireFromString("30.00")},
		},
	}))
	require.NoError(t, invoices.Create(&invoicedomain.Invoice{
		ClientID: 1,
		Total:    decimal.RequireFromString("12.00"),
		IssuedAt: now.AddDate(0, -1, 0),
		Lines: []invoicedomain.InvoiceLine{
			{MedicationID: "med-2", Quantity: 2, UnitPrice: decimal.RequireFromString("6.00"), Subtotal: decimal.RequireFromString("12.00")},
		},
	}))

	handler := NewGetStatsHandler(medications, clients, suppliers, invoices, orders, func() time.Time { return now })

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalMedications)
	assert.Equal(t, int64(1), stats.TotalClients)
	assert.Equal(t, int64(1), stats.TotalSuppliers)
	assert.Equal(t, int64(2), stats.TotalInvoices)
	assert.Equal(t, int64(0), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, "30.00", stats.MonthlyRevenue)
}
