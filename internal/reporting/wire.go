//go:build wireinject
// +build wireinject

package reporting

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/amrani/pharmacy-backend/internal/invoice"
	"github.com/amrani/pharmacy-backend/internal/order"
	"github.com/amrani/pharmacy-backend/internal/reporting/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ReportingHandler, error) {
	wire.Build(
		invoice.RepositorySet,
		order.ProvideOrderRepository,
		order.ProvideSupplierRepository,
		http.NewReportingHandler,
	)
	return nil, nil
}
