package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
)

type GormInvoiceRepository struct {
	db     *gorm.DB
	ledger meddomain.StockLedger
}

func NewGormInvoiceRepository(db *gorm.DB, ledger meddomain.StockLedger) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, ledger: ledger}
}

// Create persists the header with its lines and debits stock per line,
// all in one transaction. The ledger's conditional update guards the
// non-negative invariant, so a concurrent sale of the same medication
// rolls this transaction back instead of overselling.
func (r *GormInvoiceRepository) Create(invoice *domain.Invoice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for _, line := range invoice.Lines {
			if err := r.ledger.Decrement(tx, line.MedicationID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormInvoiceRepository) FindByID(id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.
		Preload("Client").
		Preload("Lines.Medication").
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindAll(filter domain.Filter) ([]domain.Invoice, error) {
	query := r.db.
		Preload("Client").
		Preload("Lines.Medication")

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.From != nil {
		query = query.Where("date_facture >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date_facture <= ?", *filter.To)
	}

	var invoices []domain.Invoice
	err := query.Order("date_facture DESC").Find(&invoices).Error
	return invoices, err
}

func (r *GormInvoiceRepository) UpdateHeader(id uint, patch domain.HeaderPatch) (*domain.Invoice, error) {
	updates := map[string]interface{}{}
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.IssuedAt != nil {
		updates["date_facture"] = *patch.IssuedAt
	}

	if len(updates) > 0 {
		result := r.db.Model(&domain.Invoice{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.FindByID(id)
}

// Delete restores each line's quantity to the ledger, deletes the lines,
// then the header, in one transaction.
func (r *GormInvoiceRepository) Delete(id uint) error {
	invoice, err := r.FindByID(id)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range invoice.Lines {
			if err := r.ledger.Increment(tx, line.MedicationID, line.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("facture_id = ?", invoice.ID).Delete(&domain.InvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Invoice{}, invoice.ID).Error
	})
}

func (r *GormInvoiceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Invoice{}).Count(&count).Error
	return count, err
}

func (r *GormInvoiceRepository) RevenueSince(since time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.Model(&domain.Invoice{}).
		Where("date_facture >= ?", since).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}
