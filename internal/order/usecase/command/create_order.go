package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/pricing"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

// OrderLineInput is one requested line of a new order
type OrderLineInput struct {
	MedicationID string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// CreateOrderCommand represents the command to create a purchase order
type CreateOrderCommand struct {
	SupplierID uint
	Lines      []OrderLineInput
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	orders      domain.OrderRepository
	suppliers   supplierdomain.SupplierRepository
	medications meddomain.MedicationRepository
	now         func() time.Time
}

// NewCreateOrderHandler creates a new create order handler.
// now is the injected clock; nil falls back to time.Now.
func NewCreateOrderHandler(
	orders domain.OrderRepository,
	suppliers supplierdomain.SupplierRepository,
	medications meddomain.MedicationRepository,
	now func() time.Time,
) *CreateOrderHandler {
	if now == nil {
		now = time.Now
	}
	return &CreateOrderHandler{orders: orders, suppliers: suppliers, medications: medications, now: now}
}

// Handle executes the create order command. No stock moves here:
// stock changes only when the order is received.
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.SupplierID == 0 {
		return nil, fmt.Errorf("supplier id is required")
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

	if _, err := h.suppliers.FindByID(cmd.SupplierID); err != nil {
		return nil, err
	}
	for _, line := range cmd.Lines {
		if _, err := h.medications.FindByID(line.MedicationID); err != nil {
			return nil, err
		}
	}

	inputs := make([]pricing.LineInput, len(cmd.Lines))
	for i, line := range cmd.Lines {
		inputs[i] = pricing.LineInput{Quantity: line.Quantity, UnitPrice: line.UnitPrice}
	}
	subtotals, total := pricing.Total(inputs)

	order := &domain.Order{
		SupplierID: cmd.SupplierID,
		Total:      total,
		OrderedAt:  h.now(),
	}
	for i, line := range cmd.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			MedicationID: line.MedicationID,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice.Round(2),
			Subtotal:     subtotals[i],
		})
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return h.orders.FindByID(order.ID)
}
