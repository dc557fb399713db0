package seed

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tair/starwars-api/internal/catalog/catalogtest"
	"github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/catalog/repository"
	"github.com/tair/starwars-api/pkg/database/dbtest"
)

func loadFixtureFile(t *testing.T) *Fixtures {
	t.Helper()
	f, err := os.Open("testdata/fixtures.yaml")
	require.NoError(t, err)
	defer f.Close()

	fx, err := Load(f)
	require.NoError(t, err)
	return fx
}

func TestLoadFixtures(t *testing.T) {
	fx := loadFixtureFile(t)

	assert.Len(t, fx.Users, 2)
	assert.Len(t, fx.Planets, 2)
	assert.Len(t, fx.People, 3)
	assert.Len(t, fx.Vehicles, 2)
	assert.Equal(t, []string{"Luke Skywalker"}, fx.Vehicles[0].Pilots)
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "starships: []\n"},
		{name: "invalid email", doc: "users:\n  - email: not-an-email\n    password: x\n"},
		{name: "missing planet terrain", doc: "planets:\n  - name: Hoth\n    climate: frozen\n"},
		{name: "name too long", doc: "vehicles:\n  - name: " + strings.Repeat("x", 51) + "\n    model: m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	fx, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fx.Users)
}

func TestRunSeedsInDependencyOrder(t *testing.T) {
	repo := catalogtest.NewMemoryRepository()
	s := NewSeeder(repo, bcrypt.MinCost)

	sum, err := s.Run(context.Background(), loadFixtureFile(t))
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 2, Planets: 2, People: 3, Vehicles: 2, Pilots: 1}, sum)

	require.Len(t, repo.Users, 2)
	assert.NotEqual(t, "x-wing", repo.Users[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.Users[0].Password), []byte("x-wing")))

	require.Len(t, repo.People, 3)
	require.NotNil(t, repo.People[0].PlanetID)
	assert.Equal(t, repo.Planets[0].ID, *repo.People[0].PlanetID)
	assert.Nil(t, repo.People[2].PlanetID)

	pilots, err := repo.ListPilots(context.Background(), repo.Vehicles[0].ID)
	require.NoError(t, err)
	require.Len(t, pilots, 1)
	assert.Equal(t, "Luke Skywalker", pilots[0].Person.Name)
}

func TestRunResolvesExistingPlanet(t *testing.T) {
	repo := catalogtest.NewMemoryRepository()
	repo.Planets = []domain.Planet{{ID: 9, Name: "Naboo"}}

	fx := &Fixtures{People: []PersonFixture{{Name: "Padmé Amidala", Height: 1.65, Mass: 45, Planet: "Naboo"}}}
	_, err := NewSeeder(repo, bcrypt.MinCost).Run(context.Background(), fx)
	require.NoError(t, err)

	require.Len(t, repo.People, 1)
	assert.Equal(t, uint(9), *repo.People[0].PlanetID)
}

func TestRunUnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		fx   *Fixtures
		want error
	}{
		{
			name: "unknown planet",
			fx:   &Fixtures{People: []PersonFixture{{Name: "Rey", Planet: "Jakku"}}},
			want: ErrUnknownPlanet,
		},
		{
			name: "unknown pilot",
			fx:   &Fixtures{Vehicles: []VehicleFixture{{Name: "Falcon", Model: "YT-1300", Pilots: []string{"Han Solo"}}}},
			want: ErrUnknownPilot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeeder(catalogtest.NewMemoryRepository(), bcrypt.MinCost).Run(context.Background(), tt.fx)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRunStopsOnRepositoryError(t *testing.T) {
	repo := catalogtest.NewMemoryRepository()
	repo.Err = errors.New("db down")

	fx := &Fixtures{Planets: []PlanetFixture{{Name: "Hoth", Terrain: "tundra", Climate: "frozen"}}}
	sum, err := NewSeeder(repo, bcrypt.MinCost).Run(context.Background(), fx)

	assert.ErrorContains(t, err, "failed to create planet Hoth")
	assert.Equal(t, 0, sum.Planets)
}

// X-wing links a known pilot before Speeder names one that does not exist.
func pilotFailureFixtures() *Fixtures {
	vehicles := []VehicleFixture{
		{Name: "X-wing", Model: "T-65", Pilots: []string{"Luke Skywalker"}},
		{Name: "Speeder", Model: "X-34", Pilots: []string{"Han Solo"}},
	}
	return &Fixtures{
		Planets:  []PlanetFixture{{Name: "Tatooine", Population: 200000, Terrain: "desert", Climate: "arid"}},
		People:   []PersonFixture{{Name: "Luke Skywalker", Height: 1.72, Mass: 77, Planet: "Tatooine"}},
		Vehicles: vehicles,
	}
}

func TestRunRollsBackOnUnknownPilot(t *testing.T) {
	repo := catalogtest.NewMemoryRepository()

	sum, err := NewSeeder(repo, bcrypt.MinCost).Run(context.Background(), pilotFailureFixtures())

	require.ErrorIs(t, err, ErrUnknownPilot)
	assert.Equal(t, Summary{}, sum)
	assert.Empty(t, repo.Planets)
	assert.Empty(t, repo.People)
	assert.Empty(t, repo.Vehicles)
	assert.Empty(t, repo.Pilots)
}

func TestRunRollsBackDatabaseTransaction(t *testing.T) {
	db, mock := dbtest.NewMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "planets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "people"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "vehicles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "vehicles_pilots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "vehicles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectRollback()

	seeder := NewSeeder(repository.NewGormCatalogRepository(db), bcrypt.MinCost)
	_, err := seeder.Run(context.Background(), pilotFailureFixtures())

	assert.ErrorIs(t, err, ErrUnknownPilot)
}
