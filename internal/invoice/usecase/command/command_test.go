package command

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	clientrepo "github.com/amrani/pharmacy-backend/internal/client/repository"
	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice/repository"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	medrepo "github.com/amrani/pharmacy-backend/internal/medication/repository"
)

type invoiceFixture struct {
	medications *medrepo.MemoryMedicationRepository
	clients     *clientrepo.MemoryClientRepository
	invoices    *repository.MemoryInvoiceRepository
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	medications := medrepo.NewMemoryMedicationRepository()
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-1",
		Name:  "Amoxicillin",
		Price: decimal.RequireFromString("10.00"),
		Stock: 5,
	}))

	clients := clientrepo.NewMemoryClientRepository()
	require.NoError(t, clients.Create(&clientdomain.Client{ID: 1, Name: "Dupont"}))

	return &invoiceFixture{
		medications: medications,
		clients:     clients,
		invoices:    repository.NewMemoryInvoiceRepository(medications),
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestCreateInvoiceDebitsStock(t *testing.T) {
	f := newInvoiceFixture(t)
	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	invoice, err := handler.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), invoice.ClientID)
	assert.Equal(t, "50.00", invoice.Total.StringFixed(2))
	assert.Equal(t, fixedClock(), invoice.IssuedAt)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "50.00", invoice.Lines[0].Subtotal.StringFixed(2))

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 0, med.Stock)
}

func TestCreateInvoiceInsufficientStock(t *testing.T) {
	f := newInvoiceFixture(t)
	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	_, err := handler.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	// stock is exhausted, one more unit must be refused
	_, err = handler.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})

	var insufficient *meddomain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Amoxicillin", insufficient.MedicationName)

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 0, med.Stock)

	count, err := f.invoices.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateInvoiceConcurrentNeverOversells(t *testing.T) {
	f := newInvoiceFixture(t)
	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	// 20 buyers race for 5 units; exactly 5 may win
	const buyers = 20
	errs := make(chan error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(CreateInvoiceCommand{
				ClientID: 1,
				Lines: []InvoiceLineInput{
					{MedicationID: "med-1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
				},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *meddomain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, 5, succeeded)

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 0, med.Stock)

	count, err := f.invoices.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestCreateInvoicePartialFailureMovesNothing(t *testing.T) {
	f := newInvoiceFixture(t)
	require.NoError(t, f.medications.Create(&meddomain.Medication{
		ID:    "med-2",
		Name:  "Ibuprofen",
		Price: decimal.RequireFromString("6.00"),
		Stock: 1,
	}))

	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	// second line exceeds stock, the whole invoice must be refused
	_, err := handler.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{MedicationID: "med-2", Quantity: 3, UnitPrice: decimal.RequireFromString("6.00")},
		},
	})

	var insufficient *meddomain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Ibuprofen", insufficient.MedicationName)

	med1, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med1.Stock)
	med2, err := f.medications.FindByID("med-2")
	require.NoError(t, err)
	assert.Equal(t, 1, med2.Stock)
}

func TestCreateInvoiceUnknownClient(t *testing.T) {
	f := newInvoiceFixture(t)
	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	_, err := handler.Handle(CreateInvoiceCommand{
		ClientID: 99,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, clientdomain.ErrNotFound)
}

func TestCreateInvoiceUnknownMedication(t *testing.T) {
	f := newInvoiceFixture(t)
	handler := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)

	_, err := handler.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "missing", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	assert.ErrorIs(t, err, meddomain.ErrNotFound)
}

func TestDeleteInvoiceRestoresStock(t *testing.T) {
	f := newInvoiceFixture(t)
	create := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)
	del := NewDeleteInvoiceHandler(f.invoices)

	invoice, err := create.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, del.Handle(DeleteInvoiceCommand{InvoiceID: invoice.ID}))

	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)

	_, err = f.invoices.FindByID(invoice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteInvoiceNotFound(t *testing.T) {
	f := newInvoiceFixture(t)
	del := NewDeleteInvoiceHandler(f.invoices)

	err := del.Handle(DeleteInvoiceCommand{InvoiceID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateInvoiceHeaderOnly(t *testing.T) {
	f := newInvoiceFixture(t)
	require.NoError(t, f.clients.Create(&clientdomain.Client{ID: 2, Name: "Martin"}))

	create := NewCreateInvoiceHandler(f.invoices, f.clients, f.medications, fixedClock)
	update := NewUpdateInvoiceHandler(f.invoices, f.clients)

	invoice, err := create.Handle(CreateInvoiceCommand{
		ClientID: 1,
		Lines: []InvoiceLineInput{
			{MedicationID: "med-1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	newClient := uint(2)
	updated, err := update.Handle(UpdateInvoiceCommand{InvoiceID: invoice.ID, ClientID: &newClient})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.ClientID)
	assert.Equal(t, "20.00", updated.Total.StringFixed(2))

	// header patch leaves stock untouched
	med, err := f.medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 3, med.Stock)
}
