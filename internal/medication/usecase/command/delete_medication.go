package command

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// DeleteMedicationCommand represents the command to delete a medication
type DeleteMedicationCommand struct {
	ID string
}

// DeleteMedicationHandler handles delete medication command
type DeleteMedicationHandler struct {
	repo domain.MedicationRepository
}

// NewDeleteMedicationHandler creates a new delete medication handler
func NewDeleteMedicationHandler(repo domain.MedicationRepository) *DeleteMedicationHandler {
	return &DeleteMedicationHandler{repo: repo}
}

// Handle executes the delete medication command
func (h *DeleteMedicationHandler) Handle(cmd DeleteMedicationCommand) error {
	if cmd.ID == "" {
		return fmt.Errorf("id is required")
	}
	return h.repo.Delete(cmd.ID)
}
