package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
)

// Invoice is a sales record to a client. Creating one debits stock per
// line; deleting one restores it.
type Invoice struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	ClientID  uint                 `json:"client_id" gorm:"column:client_id;not null;index"`
	Total     decimal.Decimal      `json:"total" gorm:"column:total;type:decimal(10,2);not null"`
	IssuedAt  time.Time            `json:"date_facture" gorm:"column:date_facture;not null;index"`
	Client    *clientdomain.Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Lines     []InvoiceLine        `json:"details" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "factures"
}

// InvoiceLine is one (medication, quantity, sale price) entry of an invoice
type InvoiceLine struct {
	ID           uint                  `json:"id" gorm:"primaryKey"`
	InvoiceID    uint                  `json:"facture_id" gorm:"column:facture_id;not null;index"`
	MedicationID string                `json:"medicament_id" gorm:"column:medicament_id;type:varchar(36);not null;index"`
	Quantity     int                   `json:"quantite" gorm:"column:quantite;not null"`
	UnitPrice    decimal.Decimal       `json:"prix_unitaire" gorm:"column:prix_unitaire;type:decimal(10,2);not null"`
	Subtotal     decimal.Decimal       `json:"sous_total" gorm:"column:sous_total;type:decimal(10,2);not null"`
	Medication   *meddomain.Medication `json:"medicament,omitempty" gorm:"foreignKey:MedicationID"`
}

// TableName specifies the table name
func (InvoiceLine) TableName() string {
	return "details_factures"
}

// ErrNotFound is returned when a referenced invoice does not exist
var ErrNotFound = errors.New("invoice not found")

// Filter narrows invoice listings
type Filter struct {
	ClientID *uint
	From     *time.Time
	To       *time.Time
}

// HeaderPatch carries the header-only fields a PATCH may change.
// Total is server-derived and not patchable.
type HeaderPatch struct {
	ClientID *uint
	IssuedAt *time.Time
}

// InvoiceRepository defines the contract for invoice data access.
// Create and Delete are the workflow's atomic units: header, lines and
// stock deltas commit or roll back together.
type InvoiceRepository interface {
	// Create persists the header and lines and debits stock per line in
	// one transaction. The debit is an atomic conditional update, so a
	// concurrent debit can never drive stock negative; an insufficient
	// line fails the whole transaction with InsufficientStockError.
	Create(invoice *Invoice) error
	FindByID(id uint) (*Invoice, error)
	FindAll(filter Filter) ([]Invoice, error)
	// UpdateHeader applies a header-only patch and returns the fresh invoice
	UpdateHeader(id uint, patch HeaderPatch) (*Invoice, error)
	// Delete restores stock per line, then deletes the lines and the
	// header, in one transaction.
	Delete(id uint) error
	Count() (int64, error)
	// RevenueSince sums totals of invoices issued at or after the given time
	RevenueSince(since time.Time) (decimal.Decimal, error)
}
