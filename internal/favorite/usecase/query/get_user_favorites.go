package query

import (
	"context"
	"fmt"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
)

// GetUserFavoritesQuery represents the query to get every favorite of a user
type GetUserFavoritesQuery struct {
	UserID uint
}

// GetUserFavoritesHandler handles get user favorites query
type GetUserFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewGetUserFavoritesHandler creates a new get user favorites handler
func NewGetUserFavoritesHandler(repo domain.FavoriteRepository) *GetUserFavoritesHandler {
	return &GetUserFavoritesHandler{repo: repo}
}

// Handle executes the get user favorites query
func (h *GetUserFavoritesHandler) Handle(ctx context.Context, query GetUserFavoritesQuery) (*catalog.User, *domain.UserFavorites, error) {
	user, err := h.repo.FindUser(ctx, query.UserID)
	if err != nil {
		return nil, nil, err
	}

	favs, err := h.repo.ListByUser(ctx, query.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return user, favs, nil
}

// CountFavoritesQuery represents the query to count all stored favorites
type CountFavoritesQuery struct{}

// CountFavoritesHandler handles count favorites query
type CountFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewCountFavoritesHandler creates a new count favorites handler
func NewCountFavoritesHandler(repo domain.FavoriteRepository) *CountFavoritesHandler {
	return &CountFavoritesHandler{repo: repo}
}

// Handle executes the count favorites query
func (h *CountFavoritesHandler) Handle(ctx context.Context, query CountFavoritesQuery) (int64, error) {
	count, err := h.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
