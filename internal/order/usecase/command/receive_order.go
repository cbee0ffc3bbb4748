package command

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/order/domain"
)

// ReceiveOrderCommand represents the command to receive an order
type ReceiveOrderCommand struct {
	OrderID uint
}

// ReceiveOrderHandler handles receive order command
type ReceiveOrderHandler struct {
	orders domain.OrderRepository
}

// NewReceiveOrderHandler creates a new receive order handler
func NewReceiveOrderHandler(orders domain.OrderRepository) *ReceiveOrderHandler {
	return &ReceiveOrderHandler{orders: orders}
}

// Handle executes the receive order command, crediting every line's
// quantity to the stock ledger. Receipt is not idempotent: receiving the
// same order twice credits stock twice.
func (h *ReceiveOrderHandler) Handle(cmd ReceiveOrderCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	return h.orders.Receive(cmd.OrderID)
}
