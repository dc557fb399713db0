package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a catalog lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned for a zero or unparsable identifier.
	ErrInvalidID = errors.New("invalid id")
)

// CatalogRepository defines the contract for catalog data access. Find
// methods wrap ErrNotFound when the row does not exist.
type CatalogRepository interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindUser(ctx context.Context, id uint) (*User, error)
	CreateUser(ctx context.Context, user *User) error

	ListPeople(ctx context.Context) ([]Person, error)
	FindPerson(ctx context.Context, id uint) (*Person, error)
	CreatePerson(ctx context.Context, person *Person) error

	ListPlanets(ctx context.Context) ([]Planet, error)
	FindPlanet(ctx context.Context, id uint) (*Planet, error)
	FindPlanetByName(ctx context.Context, name string) (*Planet, error)
	CreatePlanet(ctx context.Context, planet *Planet) error

	ListVehicles(ctx context.Context) ([]Vehicle, error)
	FindVehicle(ctx context.Context, id uint) (*Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *Vehicle) error

	ListPilots(ctx context.Context, vehicleID uint) ([]VehiclePilot, error)
	CreatePilot(ctx context.Context, pilot *VehiclePilot) error

	// WithinTx runs fn against a repository bound to one transaction.
	// Returning an error from fn rolls everything back.
	WithinTx(ctx context.Context, fn func(repo CatalogRepository) error) error
}
