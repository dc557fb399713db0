package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

// GormCatalogRepository implements domain.CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// first loads a single row by primary key into dest.
func (r *GormCatalogRepository) first(ctx context.Context, dest interface{}, kind string, id uint) error {
	if err := r.db.WithContext(ctx).First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to find %s: %w", kind, err)
	}
	return nil
}

// ListUsers retrieves all users ordered by id
func (r *GormCatalogRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindUser retrieves a user by ID
func (r *GormCatalogRepository) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.first(ctx, &user, "user", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user
func (r *GormCatalogRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ListPeople retrieves all people ordered by id
func (r *GormCatalogRepository) ListPeople(ctx context.Context) ([]domain.Person, error) {
	var people []domain.Person
	if err := r.db.WithContext(ctx).Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// FindPerson retrieves a person by ID
func (r *GormCatalogRepository) FindPerson(ctx context.Context, id uint) (*domain.Person, error) {
	var person domain.Person
	if err := r.first(ctx, &person, "person", id); err != nil {
		return nil, err
	}
	return &person, nil
}

// CreatePerson inserts a new person
func (r *GormCatalogRepository) CreatePerson(ctx context.Context, person *domain.Person) error {
	if err := r.db.WithContext(ctx).Omit("Planet").Create(person).Error; err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// ListPlanets retrieves all planets ordered by id
func (r *GormCatalogRepository) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	var planets []domain.Planet
	if err := r.db.WithContext(ctx).Order("id").Find(&planets).Error; err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}
	return planets, nil
}

// FindPlanet retrieves a planet by ID
func (r *GormCatalogRepository) FindPlanet(ctx context.Context, id uint) (*domain.Planet, error) {
	var planet domain.Planet
	if err := r.first(ctx, &planet, "planet", id); err != nil {
		return nil, err
	}
	return &planet, nil
}

// FindPlanetByName retrieves a planet by its unique name
func (r *GormCatalogRepository) FindPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	var planet domain.Planet
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&planet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("planet %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find planet: %w", err)
	}
	return &planet, nil
}

// CreatePlanet inserts a new planet
func (r *GormCatalogRepository) CreatePlanet(ctx context.Context, planet *domain.Planet) error {
	if err := r.db.WithContext(ctx).Create(planet).Error; err != nil {
		return fmt.Errorf("failed to create planet: %w", err)
	}
	return nil
}

// ListVehicles retrieves all vehicles ordered by id
func (r *GormCatalogRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	if err := r.db.WithContext(ctx).Order("id").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// FindVehicle retrieves a vehicle by ID
func (r *GormCatalogRepository) FindVehicle(ctx context.Context, id uint) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.first(ctx, &vehicle, "vehicle", id); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateVehicle inserts a new vehicle
func (r *GormCatalogRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// ListPilots retrieves the pilot links of a vehicle with the pilots loaded
func (r *GormCatalogRepository) ListPilots(ctx context.Context, vehicleID uint) ([]domain.VehiclePilot, error) {
	var pilots []domain.VehiclePilot
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("vehicle_id = ?", vehicleID).
		Order("id").
		Find(&pilots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pilots: %w", err)
	}
	return pilots, nil
}

// CreatePilot links a person to a vehicle
func (r *GormCatalogRepository) CreatePilot(ctx context.Context, pilot *domain.VehiclePilot) error {
	if err := r.db.WithContext(ctx).Omit("Person", "Vehicle").Create(pilot).Error; err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}
	return nil
}

// WithinTx runs fn inside a database transaction
func (r *GormCatalogRepository) WithinTx(ctx context.Context, fn func(repo domain.CatalogRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormCatalogRepository{db: tx})
	})
}
