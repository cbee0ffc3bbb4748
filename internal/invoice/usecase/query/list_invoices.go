package query

import (
	"fmt"
	"time"

	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
)

// ListInvoicesQuery represents the query to list invoices
type ListInvoicesQuery struct {
	ClientID *uint
	From     *time.Time
	To       *time.Time
}

// ListInvoicesHandler handles list invoices query
type ListInvoicesHandler struct {
	repo domain.InvoiceRepository
}

// NewListInvoicesHandler creates a new list invoices handler
func NewListInvoicesHandler(repo domain.InvoiceRepository) *ListInvoicesHandler {
	return &ListInvoicesHandler{repo: repo}
}

// Handle executes the list invoices query
func (h *ListInvoicesHandler) Handle(query ListInvoicesQuery) ([]domain.Invoice, error) {
	invoices, err := h.repo.FindAll(domain.Filter{
		ClientID: query.ClientID,
		From:     query.From,
		To:       query.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
