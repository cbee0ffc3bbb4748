package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// MemoryMedicationRepository is an in-memory MedicationRepository and
// StockLedger, used by tests. Mutations hold a single mutex, which gives
// the same all-or-nothing visibility the SQL implementation gets from
// transactions.
type MemoryMedicationRepository struct {
	mu          sync.Mutex
	medications map[string]domain.Medication
}

func NewMemoryMedicationRepository() *MemoryMedicationRepository {
	return &MemoryMedicationRepository{medications: make(map[string]domain.Medication)}
}

func (r *MemoryMedicationRepository) Create(medication *domain.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.medications[medication.ID]; exists {
		return fmt.Errorf("medication %s already exists", medication.ID)
	}
	r.medications[medication.ID] = *medication
	return nil
}

func (r *MemoryMedicationRepository) FindByID(id string) (*domain.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	medication, ok := r.medications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &medication, nil
}

func (r *MemoryMedicationRepository) FindAll(filter domain.Filter) ([]domain.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var medications []domain.Medication
	for _, m := range r.medications {
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.GroupID != nil && (m.GroupID == nil || *m.GroupID != *filter.GroupID) {
			continue
		}
		if filter.LowStock && m.Stock >= domain.LowStockThreshold {
			continue
		}
		medications = append(medications, m)
	}
	sort.Slice(medications, func(i, j int) bool { return medications[i].Name < medications[j].Name })
	return medications, nil
}

func (r *MemoryMedicationRepository) Update(medication *domain.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.medications[medication.ID]; !ok {
		return domain.ErrNotFound
	}
	r.medications[medication.ID] = *medication
	return nil
}

func (r *MemoryMedicationRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.medications[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.medications, id)
	return nil
}

func (r *MemoryMedicationRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.medications)), nil
}

// Increment implements StockLedger. The tx argument is ignored in memory.
func (r *MemoryMedicationRepository) Increment(_ *gorm.DB, medicationID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	medication, ok := r.medications[medicationID]
	if !ok {
		return domain.ErrNotFound
	}
	medication.Stock += quantity
	r.medications[medicationID] = medication
	return nil
}

// Decrement implements StockLedger with the non-negative guard
func (r *MemoryMedicationRepository) Decrement(_ *gorm.DB, medicationID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	medication, ok := r.medications[medicationID]
	if !ok {
		return domain.ErrNotFound
	}
	if medication.Stock < quantity {
		return &domain.InsufficientStockError{
			MedicationID:   medicationID,
			MedicationName: medication.Name,
		}
	}
	medication.Stock -= quantity
	r.medications[medicationID] = medication
	return nil
}

// Adjust implements the administrative StockLedger override
func (r *MemoryMedicationRepository) Adjust(medicationID string, quantity int, mode domain.AdjustMode) (*domain.Medication, error) {
	switch mode {
	case domain.AdjustAdd:
		if err := r.Increment(nil, medicationID, quantity); err != nil {
			return nil, err
		}
	case domain.AdjustSubtract:
		if err := r.Decrement(nil, medicationID, quantity); err != nil {
			return nil, err
		}
	case domain.AdjustSet:
		r.mu.Lock()
		medication, ok := r.medications[medicationID]
		if !ok {
			r.mu.Unlock()
			return nil, domain.ErrNotFound
		}
		medication.Stock = quantity
		r.medications[medicationID] = medication
		r.mu.Unlock()
	default:
		return nil, fmt.Errorf("unknown adjust mode: %s", mode)
	}
	return r.FindByID(medicationID)
}
