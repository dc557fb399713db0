package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
)

// GormFavoriteRepository implements domain.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// table returns the favorite model and target column for kind
func table(kind domain.Kind) (interface{}, string, error) {
	switch kind {
	case domain.KindPlanet:
		return &domain.FavoritePlanet{}, "planet_id", nil
	case domain.KindPerson:
		return &domain.FavoritePerson{}, "people_id", nil
	case domain.KindVehicle:
		return &domain.FavoriteVehicle{}, "vehicle_id", nil
	}
	return nil, "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

func newFavorite(kind domain.Kind, userID, targetID uint) interface{} {
	switch kind {
	case domain.KindPlanet:
		return &domain.FavoritePlanet{UserID: userID, PlanetID: targetID}
	case domain.KindPerson:
		return &domain.FavoritePerson{UserID: userID, PeopleID: targetID}
	default:
		return &domain.FavoriteVehicle{UserID: userID, VehicleID: targetID}
	}
}

// FindUser retrieves the owner of a favorite list
func (r *GormFavoriteRepository) FindUser(ctx context.Context, userID uint) (*catalog.User, error) {
	var user catalog.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// TargetExists reports whether the catalog entity a favorite would point at exists
func (r *GormFavoriteRepository) TargetExists(ctx context.Context, kind domain.Kind, targetID uint) (bool, error) {
	var model interface{}
	switch kind {
	case domain.KindPlanet:
		model = &catalog.Planet{}
	case domain.KindPerson:
		model = &catalog.Person{}
	case domain.KindVehicle:
		model = &catalog.Vehicle{}
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}
	return count > 0, nil
}

// Exists reports whether the (user, target) pair is already a favorite
func (r *GormFavoriteRepository) Exists(ctx context.Context, kind domain.Kind, userID, targetID uint) (bool, error) {
	model, column, err := table(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND "+column+" = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", kind, err)
	}
	return count > 0, nil
}

// Add inserts a favorite. The unique index turns a concurrent duplicate
// into ErrAlreadyFavorite.
func (r *GormFavoriteRepository) Add(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	if _, _, err := table(kind); err != nil {
		return err
	}

	fav := newFavorite(kind, userID, targetID)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("favorite %s %d: %w", kind, targetID, domain.ErrAlreadyFavorite)
		}
		return fmt.Errorf("failed to add favorite %s: %w", kind, err)
	}
	return nil
}

// Remove deletes exactly the (user, target) row
func (r *GormFavoriteRepository) Remove(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	model, column, err := table(kind)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND "+column+" = ?", userID, targetID).
		Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("favorite %s %d: %w", kind, targetID, domain.ErrFavoriteNotFound)
	}
	return nil
}

// ListByUser loads every favorite of a user with the relations each view needs
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uint) (*domain.UserFavorites, error) {
	var favs domain.UserFavorites
	db := r.db.WithContext(ctx)

	err := db.Preload("User").Preload("Person").
		Where("user_id = ?", userID).Order("id").
		Find(&favs.People).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite people: %w", err)
	}

	err = db.Preload("Planet").
		Where("user_id = ?", userID).Order("id").
		Find(&favs.Planets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite planets: %w", err)
	}

	err = db.Preload("User").Preload("Vehicle").
		Where("user_id = ?", userID).Order("id").
		Find(&favs.Vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite vehicles: %w", err)
	}

	return &favs, nil
}

// Count returns the number of favorites of every kind
func (r *GormFavoriteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	for _, kind := range domain.Kinds {
		model, _, _ := table(kind)
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to count favorite %s: %w", kind, err)
		}
		total += count
	}
	return total, nil
}

// WithinTx runs fn inside a database transaction
func (r *GormFavoriteRepository) WithinTx(ctx context.Context, fn func(repo domain.FavoriteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormFavoriteRepository{db: tx})
	})
}
