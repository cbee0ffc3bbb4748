package command

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/order/domain"
)

// DeleteOrderCommand represents the command to delete an order
type DeleteOrderCommand struct {
	OrderID uint
}

// DeleteOrderHandler handles delete order command
type DeleteOrderHandler struct {
	orders domain.OrderRepository
}

// NewDeleteOrderHandler creates a new delete order handler
func NewDeleteOrderHandler(orders domain.OrderRepository) *DeleteOrderHandler {
	return &DeleteOrderHandler{orders: orders}
}

// Handle executes the delete order command. Lines go first, then the
// header. Stock is not reversed: an unreceived order never touched it,
// and a received one represents goods already on the shelf.
func (h *DeleteOrderHandler) Handle(cmd DeleteOrderCommand) error {
	if cmd.OrderID == 0 {
		return fmt.Errorf("order id is required")
	}
	return h.orders.Delete(cmd.OrderID)
}
