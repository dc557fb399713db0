// Package seed loads catalog fixtures from YAML into the database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/pkg/logger"
)

// Fixtures is the document layout of a seed file.
type Fixtures struct {
	Users    []UserFixture    `yaml:"users" validate:"dive"`
	Planets  []PlanetFixture  `yaml:"planets" validate:"dive"`
	People   []PersonFixture  `yaml:"people" validate:"dive"`
	Vehicles []VehicleFixture `yaml:"vehicles" validate:"dive"`
}

type UserFixture struct {
	Email    string `yaml:"email" validate:"required,email,max=120"`
	Password string `yaml:"password" validate:"required"`
	IsActive bool   `yaml:"is_active"`
}

type PlanetFixture struct {
	Name       string `yaml:"name" validate:"required,max=50"`
	Population int    `yaml:"population" validate:"gte=0"`
	Terrain    string `yaml:"terrain" validate:"required,max=50"`
	Climate    string `yaml:"climate" validate:"required,max=50"`
}

// PersonFixture names its home planet; the planet may come from the same
// file or already exist in the database.
type PersonFixture struct {
	Name     string  `yaml:"name" validate:"required,max=50"`
	Height   float64 `yaml:"height" validate:"gte=0"`
	Mass     int     `yaml:"mass" validate:"gte=0"`
	IsActive bool    `yaml:"is_active"`
	Planet   string  `yaml:"planet"`
}

// VehicleFixture lists its pilots by name. Pilots must be people from the
// same file.
type VehicleFixture struct {
	Name   string   `yaml:"name" validate:"required,max=50"`
	Model  string   `yaml:"model" validate:"required,max=50"`
	Pilots []string `yaml:"pilots"`
}

// Summary counts the rows a run created.
type Summary struct {
	Users    int
	Planets  int
	People   int
	Vehicles int
	Pilots   int
}

var (
	// ErrUnknownPlanet is returned when a person names a planet that is
	// neither in the file nor in the database.
	ErrUnknownPlanet = errors.New("unknown planet")
	// ErrUnknownPilot is returned when a vehicle names a person missing
	// from the file.
	ErrUnknownPilot = errors.New("unknown pilot")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates fixtures. Unknown keys are rejected.
func Load(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if err := validate.Struct(&fx); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &fx, nil
}

// Seeder writes fixtures through the catalog repository
type Seeder struct {
	repo domain.CatalogRepository
	cost int
}

// NewSeeder creates a seeder hashing passwords with bcrypt at cost
func NewSeeder(repo domain.CatalogRepository, cost int) *Seeder {
	return &Seeder{repo: repo, cost: cost}
}

// Run inserts fixtures in dependency order: users, planets, people,
// vehicles, then pilots. All rows go in one transaction, so a failure
// leaves the database as it was and reports an empty summary.
func (s *Seeder) Run(ctx context.Context, fx *Fixtures) (Summary, error) {
	var sum Summary
	err := s.repo.WithinTx(ctx, func(tx domain.CatalogRepository) error {
		sum = Summary{}
		return s.insert(ctx, tx, fx, &sum)
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info(ctx).
		Int("users", sum.Users).
		Int("planets", sum.Planets).
		Int("people", sum.People).
		Int("vehicles", sum.Vehicles).
		Int("pilots", sum.Pilots).
		Msg("Fixtures seeded")
	return sum, nil
}

func (s *Seeder) insert(ctx context.Context, repo domain.CatalogRepository, fx *Fixtures, sum *Summary) error {
	for _, u := range fx.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}
		user := &domain.User{Email: u.Email, Password: string(hash), IsActive: u.IsActive}
		if err := repo.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		sum.Users++
	}

	planets := make(map[string]uint, len(fx.Planets))
	for _, p := range fx.Planets {
		planet := &domain.Planet{Name: p.Name, Population: p.Population, Terrain: p.Terrain, Climate: p.Climate}
		if err := repo.CreatePlanet(ctx, planet); err != nil {
			return fmt.Errorf("failed to create planet %s: %w", p.Name, err)
		}
		planets[p.Name] = planet.ID
		sum.Planets++
	}

	people := make(map[string]uint, len(fx.People))
	for _, p := range fx.People {
		person := &domain.Person{Name: p.Name, Height: p.Height, Mass: p.Mass, IsActive: p.IsActive}
		if p.Planet != "" {
			id, err := planetID(ctx, repo, planets, p.Planet)
			if err != nil {
				return fmt.Errorf("person %s: %w", p.Name, err)
			}
			person.PlanetID = &id
		}
		if err := repo.CreatePerson(ctx, person); err != nil {
			return fmt.Errorf("failed to create person %s: %w", p.Name, err)
		}
		people[p.Name] = person.ID
		sum.People++
	}

	for _, v := range fx.Vehicles {
		vehicle := &domain.Vehicle{Name: v.Name, Model: v.Model}
		if err := repo.CreateVehicle(ctx, vehicle); err != nil {
			return fmt.Errorf("failed to create vehicle %s: %w", v.Name, err)
		}
		sum.Vehicles++

		for _, name := range v.Pilots {
			personID, ok := people[name]
			if !ok {
				return fmt.Errorf("vehicle %s: %w %q", v.Name, ErrUnknownPilot, name)
			}
			pilot := &domain.VehiclePilot{PeopleID: personID, VehicleID: vehicle.ID}
			if err := repo.CreatePilot(ctx, pilot); err != nil {
				return fmt.Errorf("failed to create pilot %s of %s: %w", name, v.Name, err)
			}
			sum.Pilots++
		}
	}
	return nil
}

func planetID(ctx context.Context, repo domain.CatalogRepository, created map[string]uint, name string) (uint, error) {
	if id, ok := created[name]; ok {
		return id, nil
	}
	planet, err := repo.FindPlanetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("%w %q", ErrUnknownPlanet, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up planet %s: %w", name, err)
	}
	return planet.ID, nil
}
