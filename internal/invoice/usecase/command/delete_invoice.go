package command

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
)

// DeleteInvoiceCommand represents the command to delete an invoice
type DeleteInvoiceCommand struct {
	InvoiceID uint
}

// DeleteInvoiceHandler handles delete invoice command
type DeleteInvoiceHandler struct {
	invoices domain.InvoiceRepository
}

// NewDeleteInvoiceHandler creates a new delete invoice handler
func NewDeleteInvoiceHandler(invoices domain.InvoiceRepository) *DeleteInvoiceHandler {
	return &DeleteInvoiceHandler{invoices: invoices}
}

// Handle executes the delete invoice command. Every line re-credits
// stock before the lines and the header are removed, all in one
// transaction.
func (h *DeleteInvoiceHandler) Handle(cmd DeleteInvoiceCommand) error {
	if cmd.InvoiceID == 0 {
		return fmt.Errorf("invoice id is required")
	}
	return h.invoices.Delete(cmd.InvoiceID)
}
