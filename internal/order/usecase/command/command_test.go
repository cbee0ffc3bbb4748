package command

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	medrepo "github.com/amrani/pharmacy-backend/internal/medication/repository"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/order/repository"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	supplierrepo "github.com/amrani/pharmacy-backend/internal/supplier/repository"
)

type orderFixture struct {
	medications *medrepo.MemoryMedicationRepository
	suppliers   *supplierrepo.MemorySupplierRepository
	orders      *repository.MemoryOrderRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	medications := medrepo.NewMemoryMedicationRepository()
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-1",
		Name:  "Paracetamol",
		Price: decimal.RequireFromString("8.00"),
		Stock: 5,
	}))

	suppliers := supplierrepo.NewMemorySupplierRepository()
	require.NoError(t, suppliers.Create(&supplierdomain.Supplier{ID: 1, Name: "Pharma Dist"}))

	return &orderFixture{
		medications: medications,
		suppliers:   suppliers,
		orders:      repository.NewMemoryOrderRepository(medications),
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	handler := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)

	order, err := handler.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 20, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), order.SupplierID)
	assert.Equal(t, "160.00", order.Total.StringFixed(2))
	assert.Equal(t, fixedClock(), order.OrderedAt)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "160.00", order.Lines[0].Subtotal.StringFixed(2))

	// creating an order must not move stock
	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)
}

func TestCreateOrderUnknownSupplier(t *testing.T) {
	f := newOrderFixture(t)
	handler := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)

	_, err := handler.Handle(CreateOrderCommand{
		SupplierID: 99,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 1, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	assert.ErrorIs(t, err, supplierdomain.ErrNotFound)
}

func TestCreateOrderUnknownMedication(t *testing.T) {
	f := newOrderFixture(t)
	handler := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)

	_, err := handler.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "missing", Quantity: 1, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	assert.ErrorIs(t, err, meddomain.ErrNotFound)
}

func TestCreateOrderRejectsInvalidLines(t *testing.T) {
	f := newOrderFixture(t)
	handler := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)

	_, err := handler.Handle(CreateOrderCommand{SupplierID: 1})
	assert.Error(t, err)

	_, err = handler.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 0, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	assert.Error(t, err)

	_, err = handler.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 1, UnitPrice: decimal.RequireFromString("-1.00")},
		},
	})
	assert.Error(t, err)
}

func TestReceiveOrderCreditsStock(t *testing.T) {
	f := newOrderFixture(t)
	create := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)
	receive := NewReceiveOrderHandler(f.orders)

	order, err := create.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 20, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	require.NoError(t, err)

	_, err = receive.Handle(ReceiveOrderCommand{OrderID: order.ID})
	require.NoError(t, err)

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 25, med.Stock)

	// a second receipt credits again
	_, err = receive.Handle(ReceiveOrderCommand{OrderID: order.ID})
	require.NoError(t, err)

	med, err = f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 45, med.Stock)
}

func TestReceiveOrderNotFound(t *testing.T) {
	f := newOrderFixture(t)
	receive := NewReceiveOrderHandler(f.orders)

	_, err := receive.Handle(ReceiveOrderCommand{OrderID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteOrderLeavesStockAlone(t *testing.T) {
	f := newOrderFixture(t)
	create := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)
	del := NewDeleteOrderHandler(f.orders)

	order, err := create.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 20, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, del.Handle(DeleteOrderCommand{OrderID: order.ID}))

	_, err = f.orders.FindByID(order.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)
}

func TestUpdateOrderHeaderOnly(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.suppliers.Create(&supplierdomain.Supplier{ID: 2, Name: "MediSupply"}))

	create := NewCreateOrderHandler(f.orders, f.suppliers, f.medications, fixedClock)
	update := NewUpdateOrderHandler(f.orders, f.suppliers)

	order, err := create.Handle(CreateOrderCommand{
		SupplierID: 1,
		Lines: []OrderLineInput{
			{MedicationID: "med-1", Quantity: 20, UnitPrice: decimal.RequireFromString("8.00")},
		},
	})
	require.NoError(t, err)

	newSupplier := uint(2)
	updated, err := update.Handle(UpdateOrderCommand{OrderID: order.ID, SupplierID: &newSupplier})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.SupplierID)
	assert.Equal(t, "160.00", updated.Total.StringFixed(2))
	assert.Len(t, updated.Lines, 1)
}
