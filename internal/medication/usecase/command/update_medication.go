package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// UpdateMedicationCommand patches descriptive medication fields.
// Stock is deliberately absent: it only moves through the ledger.
type UpdateMedicationCommand struct {
	ID          string
	Name        *string
	Description *string
	Dosage      *string
	Price       *decimal.Decimal
	GroupID     *uint
}

// UpdateMedicationHandler handles update medication command
type UpdateMedicationHandler struct {
	repo domain.MedicationRepository
}

// NewUpdateMedicationHandler creates a new update medication handler
func NewUpdateMedicationHandler(repo domain.MedicationRepository) *UpdateMedicationHandler {
	return &UpdateMedicationHandler{repo: repo}
}

// Handle executes the update medication command
func (h *UpdateMedicationHandler) Handle(cmd UpdateMedicationCommand) (*domain.Medication, error) {
	if cmd.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	medication, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		medication.Name = *cmd.Name
	}
	if cmd.Description != nil {
		medication.Description = *cmd.Description
	}
	if cmd.Dosage != nil {
		medication.Dosage = *cmd.Dosage
	}
	if cmd.Price != nil {
		if cmd.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative")
		}
		medication.Price = cmd.Price.Round(2)
	}
	if cmd.GroupID != nil {
		medication.GroupID = cmd.GroupID
	}

	if err := h.repo.Update(medication); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}

	return medication, nil
}
