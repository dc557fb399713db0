//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/starwars-api/internal/catalog/delivery/http"
	"github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/catalog/repository"
	"github.com/tair/starwars-api/internal/catalog/usecase/query"
	"github.com/tair/starwars-api/pkg/cache"
	"github.com/tair/starwars-api/pkg/metrics"
)

// ProvideCatalogRepository provides the traced catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewTracingCatalogRepository(repository.NewGormCatalogRepository(db))
}

var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListUsersHandler,
	query.NewListPeopleHandler,
	query.NewGetPersonHandler,
	query.NewListPlanetsHandler,
	query.NewGetPlanetHandler,
	query.NewListVehiclesHandler,
	query.NewGetVehicleHandler,
	query.NewListPilotsHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, m *metrics.HTTPMetrics, c *cache.ResponseCache) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		QueryHandlerSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
