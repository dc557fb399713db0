package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/starwars-api/internal/catalog/catalogtest"
	"github.com/tair/starwars-api/internal/catalog/domain"
)

func seededRepo() *catalogtest.MemoryRepository {
	home := uint(1)
	repo := catalogtest.NewMemoryRepository()
	repo.Users = []domain.User{{ID: 1, Email: "luke@rebels.org", Password: "x", IsActive: true}}
	repo.Planets = []domain.Planet{{ID: 1, Name: "Tatooine", Population: 200000, Terrain: "desert", Climate: "arid"}}
	repo.People = []domain.Person{
		{ID: 1, Name: "Luke Skywalker", Height: 1.72, Mass: 77, IsActive: true, PlanetID: &home},
		{ID: 2, Name: "Biggs Darklighter", Height: 1.83, Mass: 84},
	}
	repo.Vehicles = []domain.Vehicle{
		{ID: 1, Name: "Snowspeeder", Model: "t-47 airspeeder"},
		{ID: 2, Name: "Sand Crawler", Model: "Digger Crawler"},
	}
	repo.Pilots = []domain.VehiclePilot{{ID: 1, PeopleID: 1, VehicleID: 1}}
	return repo
}

func TestListHandlers(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	users, err := NewListUsersHandler(repo).Handle(ctx, ListUsersQuery{})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	people, err := NewListPeopleHandler(repo).Handle(ctx, ListPeopleQuery{})
	require.NoError(t, err)
	assert.Len(t, people, 2)

	planets, err := NewListPlanetsHandler(repo).Handle(ctx, ListPlanetsQuery{})
	require.NoError(t, err)
	assert.Len(t, planets, 1)

	vehicles, err := NewListVehiclesHandler(repo).Handle(ctx, ListVehiclesQuery{})
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
}

func TestListHandlersWrapStoreError(t *testing.T) {
	repo := seededRepo()
	boom := errors.New("connection refused")
	repo.Err = boom

	_, err := NewListPlanetsHandler(repo).Handle(context.Background(), ListPlanetsQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to list planets")
}

func TestGetPlanet(t *testing.T) {
	h := NewGetPlanetHandler(seededRepo())

	tests := []struct {
		name    string
		id      uint
		wantErr error
	}{
		{name: "existing", id: 1},
		{name: "missing", id: 42, wantErr: domain.ErrNotFound},
		{name: "zero id", id: 0, wantErr: domain.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planet, err := h.Handle(context.Background(), GetPlanetQuery{ID: tt.id})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, planet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Tatooine", planet.Name)
		})
	}
}

func TestGetPersonAndVehicle(t *testing.T) {
	ctx := context.Background()
	repo := seededRepo()

	person, err := NewGetPersonHandler(repo).Handle(ctx, GetPersonQuery{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Luke Skywalker", person.Name)

	_, err = NewGetPersonHandler(repo).Handle(ctx, GetPersonQuery{ID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	vehicle, err := NewGetVehicleHandler(repo).Handle(ctx, GetVehicleQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Sand Crawler", vehicle.Name)

	_, err = NewGetVehicleHandler(repo).Handle(ctx, GetVehicleQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListPilots(t *testing.T) {
	ctx := context.Background()
	h := NewListPilotsHandler(seededRepo())

	pilots, err := h.Handle(ctx, ListPilotsQuery{VehicleID: 1})
	require.NoError(t, err)
	require.Len(t, pilots, 1)
	assert.Equal(t, "Luke Skywalker", pilots[0].Name)

	pilots, err = h.Handle(ctx, ListPilotsQuery{VehicleID: 2})
	require.NoError(t, err)
	assert.Empty(t, pilots)

	_, err = h.Handle(ctx, ListPilotsQuery{VehicleID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
