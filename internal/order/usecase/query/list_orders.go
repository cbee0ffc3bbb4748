package query

import (
	"fmt"
	"time"

	"github.com/amrani/pharmacy-backend/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	SupplierID *uint
	From       *time.Time
	To         *time.Time
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(query ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.repo.FindAll(domain.Filter{
		SupplierID: query.SupplierID,
		From:       query.From,
		To:         query.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
