package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Medication represents a medication held in stock.
// Stock is never mutated directly; every change funnels through the StockLedger.
type Medication struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"nom" gorm:"column:nom;not null;index"`
	Description string          `json:"description" gorm:"column:description"`
	Dosage      string          `json:"dosage" gorm:"column:dosage"`
	Price       decimal.Decimal `json:"prix" gorm:"column:prix;type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"column:stock;not null;default:0;check:stock >= 0"`
	GroupID     *uint           `json:"groupe_id" gorm:"column:groupe_id;index"`
	Group       *Group          `json:"groupe,omitempty" gorm:"foreignKey:GroupID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Medication) TableName() string {
	return "medicaments"
}

// Group is a medication group (antibiotics, analgesics, ...)
type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"nom" gorm:"column:nom;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Group) TableName() string {
	return "groupes_medicaments"
}

// AdjustMode selects how an administrative stock adjustment is applied
type AdjustMode string

const (
	AdjustAdd      AdjustMode = "ajout"
	AdjustSubtract AdjustMode = "retrait"
	AdjustSet      AdjustMode = "definir"
)

// ErrNotFound is returned when a referenced medication does not exist
var ErrNotFound = errors.New("medication not found")

// InsufficientStockError is returned when a debit would drive stock negative
type InsufficientStockError struct {
	MedicationID   string
	MedicationName string
}

func (e *InsufficientStockError) Error() string {
	if e.MedicationName != "" {
		return fmt.Sprintf("insufficient stock for medication: %s", e.MedicationName)
	}
	return fmt.Sprintf("insufficient stock for medication %s", e.MedicationID)
}

// Filter narrows medication listings
type Filter struct {
	Search   string
	GroupID  *uint
	LowStock bool
}

// LowStockThreshold is the stock level under which a medication counts as low
const LowStockThreshold = 10

// MedicationRepository defines the contract for medication data access
type MedicationRepository interface {
	Create(medication *Medication) error
	FindByID(id string) (*Medication, error)
	FindAll(filter Filter) ([]Medication, error)
	Update(medication *Medication) error
	Delete(id string) error
	Count() (int64, error)
}

// StockLedger owns all stock mutation. Implementations must apply each
// operation as an atomic conditional update so stock is never observed
// negative, even under concurrent debits. The tx argument scopes the
// mutation to a caller-owned transaction; nil means "outside any".
type StockLedger interface {
	Increment(tx *gorm.DB, medicationID string, quantity int) error
	Decrement(tx *gorm.DB, medicationID string, quantity int) error
	Adjust(medicationID string, quantity int, mode AdjustMode) (*Medication, error)
}
