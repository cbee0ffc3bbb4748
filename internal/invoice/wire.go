//go:build wireinject
// +build wireinject

package invoice

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	clientrepo "github.com/amrani/pharmacy-backend/internal/client/repository"
	"github.com/amrani/pharmacy-backend/internal/invoice/delivery/http"
	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice/repository"
	"github.com/amrani/pharmacy-backend/internal/medication"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/kafka"
)

// ProvideInvoiceRepository provides the invoice repository
func ProvideInvoiceRepository(db *gorm.DB, ledger meddomain.StockLedger) domain.InvoiceRepository {
	return repository.NewGormInvoiceRepository(db, ledger)
}

// ProvideClientRepository provides the client repository
func ProvideClientRepository(db *gorm.DB) clientdomain.ClientRepository {
	return clientrepo.NewGormClientRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInvoiceRepository,
	ProvideClientRepository,
	medication.RepositorySet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events *kafka.Publisher) (*http.InvoiceHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInvoiceHandler,
	)
	return nil, nil
}
