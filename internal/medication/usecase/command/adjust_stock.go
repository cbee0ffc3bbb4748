package command

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// AdjustStockCommand is the administrative stock override:
// ajout adds, retrait subtracts (guarded against negative stock), definir sets.
type AdjustStockCommand struct {
	MedicationID string
	Quantity     int
	Mode         domain.AdjustMode
}

// AdjustStockHandler handles adjust stock command
type AdjustStockHandler struct {
	ledger domain.StockLedger
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(ledger domain.StockLedger) *AdjustStockHandler {
	return &AdjustStockHandler{ledger: ledger}
}

// Handle executes the adjust stock command
func (h *AdjustStockHandler) Handle(cmd AdjustStockCommand) (*domain.Medication, error) {
	if cmd.MedicationID == "" {
		return nil, fmt.Errorf("medication id is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	switch cmd.Mode {
	case domain.AdjustAdd, domain.AdjustSubtract, domain.AdjustSet:
	default:
		return nil, fmt.Errorf("operation must be one of ajout, retrait, definir")
	}

	return h.ledger.Adjust(cmd.MedicationID, cmd.Quantity, cmd.Mode)
}
