package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

// Order is a purchase order to a supplier. It is stock-neutral until
// received: receipt credits each line's quantity to the ledger.
type Order struct {
	ID         uint                     `json:"id" gorm:"primaryKey"`
	SupplierID uint                     `json:"fournisseur_id" gorm:"column:fournisseur_id;not null;index"`
	Total      decimal.Decimal          `json:"montant_total" gorm:"column:montant_total;type:decimal(10,2);not null"`
	OrderedAt  time.Time                `json:"date_commande" gorm:"column:date_commande;not null;index"`
	Supplier   *supplierdomain.Supplier `json:"fournisseur,omitempty" gorm:"foreignKey:SupplierID"`
	Lines      []OrderLine              `json:"details" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "commandes"
}

// OrderLine is one (medication, quantity, purchase price) entry of an order
type OrderLine struct {
	ID           uint                  `json:"id" gorm:"primaryKey"`
	OrderID      uint                  `json:"commande_id" gorm:"column:commande_id;not null;index"`
	MedicationID string                `json:"medicament_id" gorm:"column:medicament_id;type:varchar(36);not null;index"`
	Quantity     int                   `json:"quantite" gorm:"column:quantite;not null"`
	UnitPrice    decimal.Decimal       `json:"prix_unitaire" gorm:"column:prix_unitaire;type:decimal(10,2);not null"`
	Subtotal     decimal.Decimal       `json:"sous_total" gorm:"column:sous_total;type:decimal(10,2);not null"`
	Medication   *meddomain.Medication `json:"medicament,omitempty" gorm:"foreignKey:MedicationID"`
}

// TableName specifies the table name
func (OrderLine) TableName() string {
	return "details_commandes"
}

// ErrNotFound is returned when a referenced order does not exist
var ErrNotFound = errors.New("order not found")

// Filter narrows order listings
type Filter struct {
	SupplierID *uint
	From       *time.Time
	To         *time.Time
}

// HeaderPatch carries the header-only fields a PATCH may change.
// Total is server-derived and deliberately not patchable, so a header
// patch can never desynchronize the total from the lines.
type HeaderPatch struct {
	SupplierID *uint
	OrderedAt  *time.Time
}

// OrderRepository defines the contract for order data access. Create,
// Receive and Delete are the workflow's atomic units: each runs as one
// all-or-nothing transaction against the store.
type OrderRepository interface {
	// Create persists the header and all lines in one transaction.
	// Stock is untouched.
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindAll(filter Filter) ([]Order, error)
	// UpdateHeader applies a header-only patch and returns the fresh order
	UpdateHeader(id uint, patch HeaderPatch) (*Order, error)
	// Receive credits every line's quantity to the stock ledger in one
	// transaction. Receipt is not idempotent: receiving twice credits twice.
	Receive(id uint) (*Order, error)
	// Delete removes all lines then the header in one transaction,
	// with no stock reversal.
	Delete(id uint) error
	Count() (int64, error)
}
