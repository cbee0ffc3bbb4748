package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
)

type GormMedicationRepository struct {
	db *gorm.DB
}

func NewGormMedicationRepository(db *gorm.DB) *GormMedicationRepository {
	return &GormMedicationRepository{db: db}
}

func (r *GormMedicationRepository) Create(medication *domain.Medication) error {
	return r.db.Create(medication).Error
}

func (r *GormMedicationRepository) FindByID(id string) (*domain.Medication, error) {
	var medication domain.Medication
	err := r.db.Preload("Group").First(&medication, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

func (r *GormMedicationRepository) FindAll(filter domain.Filter) ([]domain.Medication, error) {
	query := r.db.Preload("Group")

	if filter.Search != "" {
		query = query.Where("nom ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.GroupID != nil {
		query = query.Where("groupe_id = ?", *filter.GroupID)
	}
	if filter.LowStock {
		query = query.Where("stock < ?", domain.LowStockThreshold)
	}

	var medications []domain.Medication
	err := query.Order("nom").Find(&medications).Error
	return medications, err
}

func (r *GormMedicationRepository) Update(medication *domain.Medication) error {
	return r.db.Save(medication).Error
}

func (r *GormMedicationRepository) Delete(id string) error {
	result := r.db.Delete(&domain.Medication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormMedicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Medication{}).Count(&count).Error
	return count, err
}

// GormStockLedger mutates stock through atomic conditional updates.
// The WHERE stock >= ? guard on debits closes the read-then-write race:
// two concurrent debits can never both pass a stale sufficiency check.
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

func (l *GormStockLedger) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return l.db
}

func (l *GormStockLedger) Increment(tx *gorm.DB, medicationID string, quantity int) error {
	result := l.conn(tx).Model(&domain.Medication{}).
		Where("id = ?", medicationID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (l *GormStockLedger) Decrement(tx *gorm.DB, medicationID string, quantity int) error {
	conn := l.conn(tx)

	result := conn.Model(&domain.Medication{}).
		Where("id = ? AND stock >= ?", medicationID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from an insufficient one
		var medication domain.Medication
		err := conn.Select("nom").First(&medication, "id = ?", medicationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			MedicationID:   medicationID,
			MedicationName: medication.Name,
		}
	}
	return nil
}

func (l *GormStockLedger) Adjust(medicationID string, quantity int, mode domain.AdjustMode) (*domain.Medication, error) {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		switch mode {
		case domain.AdjustAdd:
			return l.Increment(tx, medicationID, quantity)
		case domain.AdjustSubtract:
			return l.Decrement(tx, medicationID, quantity)
		case domain.AdjustSet:
			result := tx.Model(&domain.Medication{}).
				Where("id = ?", medicationID).
				UpdateColumn("stock", quantity)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.ErrNotFound
			}
			return nil
		default:
			return fmt.Errorf("unknown adjust mode: %s", mode)
		}
	})
	if err != nil {
		return nil, err
	}

	var medication domain.Medication
	if err := l.db.Preload("Group").First(&medication, "id = ?", medicationID).Error; err != nil {
		return nil, err
	}
	return &medication, nil
}
