package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/pricing"
)

// InvoiceLineInput is one requested line of a new invoice
type InvoiceLineInput struct {
	MedicationID string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// CreateInvoiceCommand represents the command to create a sales invoice
type CreateInvoiceCommand struct {
	ClientID uint
	Lines    []InvoiceLineInput
}

// CreateInvoiceHandler handles create invoice command
type CreateInvoiceHandler struct {
	invoices    domain.InvoiceRepository
	clients     clientdomain.ClientRepository
	medications meddomain.MedicationRepository
	now         func() time.Time
}

// NewCreateInvoiceHandler creates a new create invoice handler.
// now is the injected clock; nil falls back to time.Now.
func NewCreateInvoiceHandler(
	invoices domain.InvoiceRepository,
	clients clientdomain.ClientRepository,
	medications meddomain.MedicationRepository,
	now func() time.Time,
) *CreateInvoiceHandler {
	if now == nil {
		now = time.Now
	}
	return &CreateInvoiceHandler{invoices: invoices, clients: clients, medications: medications, now: now}
}

// Handle executes the create invoice command. Each line is checked
// against current stock before anything is persisted; the repository
// re-checks under the transaction, so a concurrent sale still cannot
// drive stock negative.
func (h *CreateInvoiceHandler) Handle(cmd CreateInvoiceCommand) (*domain.Invoice, error) {
	if cmd.ClientID == 0 {
		return nil, fmt.Errorf("client id is required")
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("at least one line is required")
	}
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("unit price cannot be negative")
		}
	}

	if _, err := h.clients.FindByID(cmd.ClientID); err != nil {
		return nil, err
	}
	for _, line := range cmd.Lines {
		med, err := h.medications.FindByID(line.MedicationID)
		if err != nil {
			return nil, err
		}
		if med.Stock < line.Quantity {
			return nil, &meddomain.InsufficientStockError{
				MedicationID:   med.ID,
				MedicationName: med.Name,
			}
		}
	}

	inputs := make([]pricing.LineInput, len(cmd.Lines))
	for i, line := range cmd.Lines {
		inputs[i] = pricing.LineInput{Quantity: line.Quantity, UnitPrice: line.UnitPrice}
	}
	subtotals, total := pricing.Total(inputs)

	invoice := &domain.Invoice{
		ClientID: cmd.ClientID,
		Total:    total,
		IssuedAt: h.now(),
	}
	for i, line := range cmd.Lines {
		invoice.Lines = append(invoice.Lines, domain.InvoiceLine{
			MedicationID: line.MedicationID,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice.Round(2),
			Subtotal:     subtotals[i],
		})
	}

	if err := h.invoices.Create(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return h.invoices.FindByID(invoice.ID)
}
