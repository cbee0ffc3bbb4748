package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// MemoryInvoiceRepository is an in-memory InvoiceRepository for tests.
// Like the SQL implementation it treats Create and Delete as atomic:
// a failed debit re-credits whatever already moved before returning.
type MemoryInvoiceRepository struct {
	mu       sync.Mutex
	nextID   uint
	invoices map[uint]domain.Invoice
	ledger   meddomain.StockLedger
}

func NewMemoryInvoiceRepository(ledger meddomain.StockLedger) *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{nextID: 1, invoices: make(map[uint]domain.Invoice), ledger: ledger}
}

func (r *MemoryInvoiceRepository) Create(invoice *domain.Invoice) error {
	for i, line := range invoice.Lines {
		if err := r.ledger.Decrement(nil, line.MedicationID, line.Quantity); err != nil {
			// roll back the debits already applied
			for j := 0; j < i; j++ {
				r.ledger.Increment(nil, invoice.Lines[j].MedicationID, invoice.Lines[j].Quantity)
			}
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if invoice.ID == 0 {
		invoice.ID = r.nextID
		r.nextID++
	}
	for i := range invoice.Lines {
		invoice.Lines[i].InvoiceID = invoice.ID
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *MemoryInvoiceRepository) FindByID(id uint) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &invoice, nil
}

func (r *MemoryInvoiceRepository) FindAll(filter domain.Filter) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var invoices []domain.Invoice
	for _, inv := range r.invoices {
		if filter.ClientID != nil && inv.ClientID != *filter.ClientID {
			continue
		}
		if filter.From != nil && inv.IssuedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && inv.IssuedAt.After(*filter.To) {
			continue
		}
		invoices = append(invoices, inv)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].IssuedAt.After(invoices[j].IssuedAt) })
	return invoices, nil
}

func (r *MemoryInvoiceRepository) UpdateHeader(id uint, patch domain.HeaderPatch) (*domain.Invoice, error) {
	r.mu.Lock()

	invoice, ok := r.invoices[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if patch.ClientID != nil {
		invoice.ClientID = *patch.ClientID
	}
	if patch.IssuedAt != nil {
		invoice.IssuedAt = *patch.IssuedAt
	}
	r.invoices[id] = invoice
	r.mu.Unlock()

	return r.FindByID(id)
}

func (r *MemoryInvoiceRepository) Delete(id uint) error {
	invoice, err := r.FindByID(id)
	if err != nil {
		return err
	}

	for _, line := range invoice.Lines {
		if err := r.ledger.Increment(nil, line.MedicationID, line.Quantity); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
	return nil
}

func (r *MemoryInvoiceRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invoices)), nil
}

func (r *MemoryInvoiceRepository) RevenueSince(since time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	revenue := decimal.Zero
	for _, inv := range r.invoices {
		if !inv.IssuedAt.Before(since) {
			revenue = revenue.Add(inv.Total)
		}
	}
	return revenue, nil
}
