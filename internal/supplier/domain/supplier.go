package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Supplier represents a medication supplier
type Supplier struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"nom" gorm:"column:nom;not null;index"`
	Address   string         `json:"adresse" gorm:"column:adresse"`
	Phone     string         `json:"telephone" gorm:"column:telephone"`
	Email     string         `json:"email" gorm:"column:email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "fournisseurs"
}

// ErrNotFound is returned when a referenced supplier does not exist
var ErrNotFound = errors.New("supplier not found")

// SupplierRepository defines the contract for supplier data access
type SupplierRepository interface {
	Create(supplier *Supplier) error
	FindByID(id uint) (*Supplier, error)
	FindAll() ([]Supplier, error)
	Update(supplier *Supplier) error
	Delete(id uint) error
	Count() (int64, error)
}
