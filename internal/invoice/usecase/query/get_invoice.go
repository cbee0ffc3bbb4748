package query

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
)

// GetInvoiceQuery represents the query to get an invoice
type GetInvoiceQuery struct {
	ID uint
}

// GetInvoiceHandler handles get invoice query
type GetInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewGetInvoiceHandler creates a new get invoice handler
func NewGetInvoiceHandler(repo domain.InvoiceRepository) *GetInvoiceHandler {
	return &GetInvoiceHandler{repo: repo}
}

// Handle executes the get invoice query
func (h *GetInvoiceHandler) Handle(query GetInvoiceQuery) (*domain.Invoice, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(query.ID)
}
