package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/client/domain"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(client *domain.Client) error {
	return r.db.Create(client).Error
}

func (r *GormClientRepository) FindByID(id uint) (*domain.Client, error) {
	var client domain.Client
	err := r.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *GormClientRepository) FindAll() ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.Order("nom").Find(&clients).Error
	return clients, err
}

func (r *GormClientRepository) Update(client *domain.Client) error {
	return r.db.Save(client).Error
}

func (r *GormClientRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormClientRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Client{}).Count(&count).Error
	return count, err
}
