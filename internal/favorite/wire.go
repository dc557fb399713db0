//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/starwars-api/internal/favorite/delivery/http"
	"github.com/tair/starwars-api/internal/favorite/domain"
	"github.com/tair/starwars-api/internal/favorite/repository"
	"github.com/tair/starwars-api/internal/favorite/usecase/command"
	"github.com/tair/starwars-api/internal/favorite/usecase/query"
	"github.com/tair/starwars-api/pkg/metrics"
)

// ProvideFavoriteRepository provides the traced favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewTracingFavoriteRepository(repository.NewGormFavoriteRepository(db))
}

var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewAddFavoriteHandler,
	command.NewRemoveFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserFavoritesHandler,
	query.NewCountFavoritesHandler,
)

// InitializeHTTPHandler initializes the favorite HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	publisher domain.EventPublisher,
	m *metrics.HTTPMetrics,
	totalFavorites prometheus.Gauge,
) (*http.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewFavoriteHandlerWithDI,
	)
	return nil, nil
}
