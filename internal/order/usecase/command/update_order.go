package command

import (
	"fmt"
	"time"

	"github.com/amrani/pharmacy-backend/internal/order/domain"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

// UpdateOrderCommand patches header-only order fields. Totals and lines
// are never touched here.
type UpdateOrderCommand struct {
	OrderID    uint
	SupplierID *uint
	OrderedAt  *time.Time
}

// UpdateOrderHandler handles update order command
type UpdateOrderHandler struct {
	orders    domain.OrderRepository
	suppliers supplierdomain.SupplierRepository
}

// NewUpdateOrderHandler creates a new update order handler
func NewUpdateOrderHandler(orders domain.OrderRepository, suppliers supplierdomain.SupplierRepository) *UpdateOrderHandler {
	return &UpdateOrderHandler{orders: orders, suppliers: suppliers}
}

// Handle executes the update order command
func (h *UpdateOrderHandler) Handle(cmd UpdateOrderCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}

	if cmd.SupplierID != nil {
		if _, err := h.suppliers.FindByID(*cmd.SupplierID); err != nil {
			return nil, err
		}
	}

	return h.orders.UpdateHeader(cmd.OrderID, domain.HeaderPatch{
		SupplierID: cmd.SupplierID,
		OrderedAt:  cmd.OrderedAt,
	})
}
