package query

import (
	"fmt"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// ListMedicationsQuery represents the query to list medications
type ListMedicationsQuery struct {
	Search   string
	GroupID  *uint
	LowStock bool
}

// ListMedicationsHandler handles list medications query
type ListMedicationsHandler struct {
	repo domain.MedicationRepository
}

// NewListMedicationsHandler creates a new list medications handler
func NewListMedicationsHandler(repo domain.MedicationRepository) *ListMedicationsHandler {
	return &ListMedicationsHandler{repo: repo}
}

// Handle executes the list medications query
func (h *ListMedicationsHandler) Handle(query ListMedicationsQuery) ([]domain.Medication, error) {
	medications, err := h.repo.FindAll(domain.Filter{
		Search:   query.Search,
		GroupID:  query.GroupID,
		LowStock: query.LowStock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}
