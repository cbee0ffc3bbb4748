package command

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// CreateMedicationCommand represents the command to create a medication
type CreateMedicationCommand struct {
	Name        string
	Description string
	Dosage      string
	Price       decimal.Decimal
	Stock       int
	GroupID     *uint
}

// CreateMedicationHandler handles create medication command
type CreateMedicationHandler struct {
	repo domain.MedicationRepository
}

// NewCreateMedicationHandler creates a new create medication handler
func NewCreateMedicationHandler(repo domain.MedicationRepository) *CreateMedicationHandler {
	return &CreateMedicationHandler{repo: repo}
}

// Handle executes the create medication command
func (h *CreateMedicationHandler) Handle(cmd CreateMedicationCommand) (*domain.Medication, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	medication := &domain.Medication{
		ID:          uuid.NewString(),
		Name:        cmd.Name,
		Description: cmd.Description,
		Dosage:      cmd.Dosage,
		Price:       cmd.Price.Round(2),
		Stock:       cmd.Stock,
		GroupID:     cmd.GroupID,
	}

	if err := h.repo.Create(medication); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	return medication, nil
}
