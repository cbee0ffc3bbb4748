package command

import (
	"fmt"
	"time"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
)

// UpdateInvoiceCommand patches header-only invoice fields. Totals,
// lines and stock are never touched here.
type UpdateInvoiceCommand struct {
	InvoiceID uint
	ClientID  *uint
	IssuedAt  *time.Time
}

// UpdateInvoiceHandler handles update invoice command
type UpdateInvoiceHandler struct {
	invoices domain.InvoiceRepository
	clients  clientdomain.ClientRepository
}

// NewUpdateInvoiceHandler creates a new update invoice handler
func NewUpdateInvoiceHandler(invoices domain.InvoiceRepository, clients clientdomain.ClientRepository) *UpdateInvoiceHandler {
	return &UpdateInvoiceHandler{invoices: invoices, clients: clients}
}

// Handle executes the update invoice command
func (h *UpdateInvoiceHandler) Handle(cmd UpdateInvoiceCommand) (*domain.Invoice, error) {
	if cmd.InvoiceID == 0 {
		return nil, fmt.Errorf("invoice id is required")
	}

	if cmd.ClientID != nil {
		if _, err := h.clients.FindByID(*cmd.ClientID); err != nil {
			return nil, err
		}
	}

	return h.invoices.UpdateHeader(cmd.InvoiceID, domain.HeaderPatch{
		ClientID: cmd.ClientID,
		IssuedAt: cmd.IssuedAt,
	})
}
