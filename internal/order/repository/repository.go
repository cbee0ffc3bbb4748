package repository

import (
	"errors"

	"gorm.io/gorm"

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
)

type GormOrderRepository struct {
	db     *gorm.DB
	ledger meddomain.StockLedger
}

func NewGormOrderRepository(db *gorm.DB, ledger meddomain.StockLedger) *GormOrderRepository {
	return &GormOrderRepository{db: db, ledger: ledger}
}

// Create persists the header and its lines in one transaction.
// GORM inserts the association rows together with the header.
func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.
		Preload("Supplier").
		Preload("Lines.Medication").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(filter domain.Filter) ([]domain.Order, error) {
	query := r.db.
		Preload("Supplier").
		Preload("Lines.Medication")

	if filter.SupplierID != nil {
		query = query.Where("fournisseur_id = ?", *filter.SupplierID)
	}
	if filter.From != nil {
		query = query.Where("date_commande >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date_commande <= ?", *filter.To)
	}

	var orders []domain.Order
	err := query.Order("date_commande DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) UpdateHeader(id uint, patch domain.HeaderPatch) (*domain.Order, error) {
	updates := map[string]interface{}{}
	if patch.SupplierID != nil {
		updates["fournisseur_id"] = *patch.SupplierID
	}
	if patch.OrderedAt != nil {
		updates["date_commande"] = *patch.OrderedAt
	}

	if len(updates) > 0 {
		result := r.db.Model(&domain.Order{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.FindByID(id)
}

// Receive credits each line's quantity to the ledger inside one
// transaction. A mid-sequence failure rolls every credit back.
func (r *GormOrderRepository) Receive(id uint) (*domain.Order, error) {
	order, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range order.Lines {
			if err := r.ledger.Increment(tx, line.MedicationID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(id)
}

// Delete removes the lines then the header in one transaction.
// No stock reversal: only receipt ever touches inventory.
func (r *GormOrderRepository) Delete(id uint) error {
	order, err := r.FindByID(id)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commande_id = ?", order.ID).Delete(&domain.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, order.ID).Error
	})
}

func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Count(&count).Error
	return count, err
}
