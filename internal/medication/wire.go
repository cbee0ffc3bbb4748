//go:build wireinject
// +build wireinject

package medication

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/medication/delivery/http"
	"github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/medication/repository"
	"github.com/amrani/pharmacy-backend/kafka"
)

// ProvideMedicationRepository provides the medication repository
func ProvideMedicationRepository(db *gorm.DB) domain.MedicationRepository {
	return repository.NewGormMedicationRepository(db)
}

// ProvideStockLedger provides the stock ledger
func ProvideStockLedger(db *gorm.DB) domain.StockLedger {
	return repository.NewGormStockLedger(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMedicationRepository,
	ProvideStockLedger,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, events *kafka.Publisher) (*http.MedicationHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewMedicationHandler,
	)
	return nil, nil
}
