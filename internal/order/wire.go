//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/medication"
	"github.com/amrani/pharmacy-backend/internal/order/delivery/http"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/order/repository"
	supplierrepo "github.com/amrani/pharmacy-backend/internal/supplier/repository"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/kafka"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB, ledger meddomain.StockLedger) domain.OrderRepository {
	return repository.NewGormOrderRepository(db, ledger)
}

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) supplierdomain.SupplierRepository {
	return supplierrepo.NewGormSupplierRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideSupplierRepository,
	medication.RepositorySet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events *kafka.Publisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
