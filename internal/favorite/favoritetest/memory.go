// Package favoritetest provides in-memory favorite collaborators for tests.
package favoritetest

import (
	"context"
	"fmt"
	"sync"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
)

type pair struct {
	kind     domain.Kind
	userID   uint
	targetID uint
}

// MemoryRepository stores favorites in memory. Catalog rows are looked
// up in the exported maps. Setting Err makes every method fail with it.
type MemoryRepository struct {
	mu       sync.Mutex
	Users    map[uint]catalog.User
	Planets  map[uint]catalog.Planet
	People   map[uint]catalog.Person
	Vehicles map[uint]catalog.Vehicle
	Err      error

	nextID    uint
	favorites []pair
	ids       map[pair]uint
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		Users:    map[uint]catalog.User{},
		Planets:  map[uint]catalog.Planet{},
		People:   map[uint]catalog.Person{},
		Vehicles: map[uint]catalog.Vehicle{},
		ids:      map[pair]uint{},
	}
}

func (m *MemoryRepository) FindUser(ctx context.Context, userID uint) (*catalog.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (m *MemoryRepository) TargetExists(ctx context.Context, kind domain.Kind, targetID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	switch kind {
	case domain.KindPlanet:
		_, ok := m.Planets[targetID]
		return ok, nil
	case domain.KindPerson:
		_, ok := m.People[targetID]
		return ok, nil
	case domain.KindVehicle:
		_, ok := m.Vehicles[targetID]
		return ok, nil
	}
	return false, domain.ErrUnknownKind
}

func (m *MemoryRepository) Exists(ctx context.Context, kind domain.Kind, userID, targetID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.ids[pair{kind, userID, targetID}]
	return ok, nil
}

// Add enforces pair uniqueness like the database index does.
func (m *MemoryRepository) Add(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p := pair{kind, userID, targetID}
	if _, ok := m.ids[p]; ok {
		return fmt.Errorf("favorite %s %d: %w", kind, targetID, domain.ErrAlreadyFavorite)
	}
	m.nextID++
	m.ids[p] = m.nextID
	m.favorites = append(m.favorites, p)
	return nil
}

func (m *MemoryRepository) Remove(ctx context.Context, kind domain.Kind, userID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p := pair{kind, userID, targetID}
	if _, ok := m.ids[p]; !ok {
		return fmt.Errorf("favorite %s %d: %w", kind, targetID, domain.ErrFavoriteNotFound)
	}
	delete(m.ids, p)
	for i, f := range m.favorites {
		if f == p {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepository) ListByUser(ctx context.Context, userID uint) (*domain.UserFavorites, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	user := m.Users[userID]
	favs := &domain.UserFavorites{}
	for _, f := range m.favorites {
		if f.userID != userID {
			continue
		}
		id := m.ids[f]
		switch f.kind {
		case domain.KindPlanet:
			planet := m.Planets[f.targetID]
			favs.Planets = append(favs.Planets, domain.FavoritePlanet{ID: id, UserID: userID, User: user, PlanetID: f.targetID, Planet: &planet})
		case domain.KindPerson:
			favs.People = append(favs.People, domain.FavoritePerson{ID: id, UserID: userID, User: user, PeopleID: f.targetID, Person: m.People[f.targetID]})
		case domain.KindVehicle:
			favs.Vehicles = append(favs.Vehicles, domain.FavoriteVehicle{ID: id, UserID: userID, User: user, VehicleID: f.targetID, Vehicle: m.Vehicles[f.targetID]})
		}
	}
	return favs, nil
}

func (m *MemoryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.favorites)), nil
}

// WithinTx runs fn directly; there is nothing to roll back in memory.
func (m *MemoryRepository) WithinTx(ctx context.Context, fn func(repo domain.FavoriteRepository) error) error {
	return fn(m)
}

// RecordingPublisher collects published events. Setting Err makes
// publishing fail after recording.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []domain.FavoriteEvent
	Err    error
}

func (p *RecordingPublisher) PublishFavoriteChanged(ctx context.Context, event domain.FavoriteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

var (
	_ domain.FavoriteRepository = (*MemoryRepository)(nil)
	_ domain.EventPublisher     = (*RecordingPublisher)(nil)
)
