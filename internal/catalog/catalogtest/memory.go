// Package catalogtest provides an in-memory CatalogRepository for tests.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

// MemoryRepository keeps catalog rows in slices. Setting Err makes every
// method fail with it.
type MemoryRepository struct {
	mu       sync.Mutex
	Users    []domain.User
	People   []domain.Person
	Planets  []domain.Planet
	Vehicles []domain.Vehicle
	Pilots   []domain.VehiclePilot
	Err      error
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

func (m *MemoryRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.User(nil), m.Users...), nil
}

func (m *MemoryRepository) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, notFound("user", id)
}

func (m *MemoryRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	user.ID = uint(len(m.Users) + 1)
	m.Users = append(m.Users, *user)
	return nil
}

func (m *MemoryRepository) ListPeople(ctx context.Context) ([]domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Person(nil), m.People...), nil
}

func (m *MemoryRepository) FindPerson(ctx context.Context, id uint) (*domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.People {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFound("person", id)
}

func (m *MemoryRepository) CreatePerson(ctx context.Context, person *domain.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	person.ID = uint(len(m.People) + 1)
	m.People = append(m.People, *person)
	return nil
}

func (m *MemoryRepository) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Planet(nil), m.Planets...), nil
}

func (m *MemoryRepository) FindPlanet(ctx context.Context, id uint) (*domain.Planet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Planets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, notFound("planet", id)
}

func (m *MemoryRepository) FindPlanetByName(ctx context.Context, name string) (*domain.Planet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Planets {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("planet %q: %w", name, domain.ErrNotFound)
}

func (m *MemoryRepository) CreatePlanet(ctx context.Context, planet *domain.Planet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	planet.ID = uint(len(m.Planets) + 1)
	m.Planets = append(m.Planets, *planet)
	return nil
}

func (m *MemoryRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Vehicle(nil), m.Vehicles...), nil
}

func (m *MemoryRepository) FindVehicle(ctx context.Context, id uint) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, v := range m.Vehicles {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, notFound("vehicle", id)
}

func (m *MemoryRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	vehicle.ID = uint(len(m.Vehicles) + 1)
	m.Vehicles = append(m.Vehicles, *vehicle)
	return nil
}

// ListPilots resolves Person the way a preload would.
func (m *MemoryRepository) ListPilots(ctx context.Context, vehicleID uint) ([]domain.VehiclePilot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var pilots []domain.VehiclePilot
	for _, vp := range m.Pilots {
		if vp.VehicleID != vehicleID {
			continue
		}
		for _, p := range m.People {
			if p.ID == vp.PeopleID {
				vp.Person = p
			}
		}
		pilots = append(pilots, vp)
	}
	return pilots, nil
}

func (m *MemoryRepository) CreatePilot(ctx context.Context, pilot *domain.VehiclePilot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	pilot.ID = uint(len(m.Pilots) + 1)
	m.Pilots = append(m.Pilots, *pilot)
	return nil
}

// WithinTx restores every slice to its state before fn when fn fails.
func (m *MemoryRepository) WithinTx(ctx context.Context, fn func(repo domain.CatalogRepository) error) error {
	m.mu.Lock()
	users := append([]domain.User(nil), m.Users...)
	people := append([]domain.Person(nil), m.People...)
	planets := append([]domain.Planet(nil), m.Planets...)
	vehicles := append([]domain.Vehicle(nil), m.Vehicles...)
	pilots := append([]domain.VehiclePilot(nil), m.Pilots...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.Users, m.People, m.Planets, m.Vehicles, m.Pilots = users, people, planets, vehicles, pilots
		m.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.CatalogRepository = (*MemoryRepository)(nil)
