package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) Create(supplier *domain.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *GormSupplierRepository) FindByID(id uint) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindAll() ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.db.Order("nom").Find(&suppliers).Error
	return suppliers, err
}

func (r *GormSupplierRepository) Update(supplier *domain.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *GormSupplierRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Supplier{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormSupplierRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Supplier{}).Count(&count).Error
	return count, err
}
