package domain

import (
	"context"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
)

// FavoriteRepository defines the contract for favorite persistence
type FavoriteRepository interface {
	// FindUser returns ErrUserNotFound when the user does not exist.
	FindUser(ctx context.Context, userID uint) (*catalog.User, error)
	TargetExists(ctx context.Context, kind Kind, targetID uint) (bool, error)
	Exists(ctx context.Context, kind Kind, userID, targetID uint) (bool, error)
	// Add returns ErrAlreadyFavorite when the pair is already stored.
	Add(ctx context.Context, kind Kind, userID, targetID uint) error
	// Remove returns ErrFavoriteNotFound when no row matched.
	Remove(ctx context.Context, kind Kind, userID, targetID uint) error
	ListByUser(ctx context.Context, userID uint) (*UserFavorites, error)
	Count(ctx context.Context) (int64, error)
	// WithinTx runs fn against a repository bound to one transaction.
	WithinTx(ctx context.Context, fn func(repo FavoriteRepository) error) error
}
