package query

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// GetMedicationQuery represents the query to get a medication
type GetMedicationQuery struct {
	ID string
}

// GetMedicationHandler handles get medication query
type GetMedicationHandler struct {
	repo domain.MedicationRepository
}

// NewGetMedicationHandler creates a new get medication handler
func NewGetMedicationHandler(repo domain.MedicationRepository) *GetMedicationHandler {
	return &GetMedicationHandler{repo: repo}
}

// Handle executes the get medication query
func (h *GetMedicationHandler) Handle(query GetMedicationQuery) (*domain.Medication, error) {
	if query.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(query.ID)
}
