package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Client represents a pharmacy client
type Client struct {
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
func (Client) TableName() string {
	return "clients"
}

// ErrNotFound is returned when a referenced client does not exist
var ErrNotFound = errors.New("client not found")

// ClientRepository defines the contract for client data access
type ClientRepository interface {
	Create(client *Client) error
	FindByID(id uint) (*Client, error)
	FindAll() ([]Client, error)
	Update(client *Client) error
	Delete(id uint) error
	Count() (int64, error)
}
