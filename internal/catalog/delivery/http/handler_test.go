package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/tair/starwars-api/internal/catalog/catalogtest"
	"github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/pkg/cache"
	"github.com/tair/starwars-api/pkg/metrics"
)

func newTestRouter(repo domain.CatalogRepository) *mux.Router {
	h := NewCatalogHandler(repo,
		metrics.NewHTTPMetrics(prometheus.NewRegistry(), "test"),
		cache.NewResponseCache(nil, time.Minute),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func seeded() *catalogtest.MemoryRepository {
	home := uint(1)
	repo := catalogtest.NewMemoryRepository()
	repo.Users = []domain.User{{ID: 1, Email: "luke@rebels.org", Password: "secret", IsActive: true}}
	repo.Planets = []domain.Planet{{ID: 1, Name: "Tatooine", Population: 200000, Terrain: "desert", Climate: "arid"}}
	repo.People = []domain.Person{{ID: 1, Name: "Luke Skywalker", Height: 1.72, Mass: 77, IsActive: true, PlanetID: &home}}
	repo.Vehicles = []domain.Vehicle{{ID: 1, Name: "Snowspeeder", Model: "t-47 airspeeder"}}
	repo.Pilots = []domain.VehiclePilot{{ID: 1, PeopleID: 1, VehicleID: 1}}
	return repo
}

func TestCatalogRoutes(t *testing.T) {
	router := newTestRouter(seeded())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "list users hides password",
			path:       "/users",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":[{"id":1,"email":"luke@rebels.org","is_active":true}]}`,
		},
		{
			name:       "list people",
			path:       "/people",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":[{"id":1,"name":"Luke Skywalker","height":1.72,"mass":77,"is_active":true,"planet_id":1}]}`,
		},
		{
			name:       "get person",
			path:       "/people/1",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":{"id":1,"name":"Luke Skywalker","height":1.72,"mass":77,"is_active":true,"planet_id":1}}`,
		},
		{
			name:       "missing person",
			path:       "/people/2",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"msg":"La persona con id 2 no existe"}`,
		},
		{
			name:       "list planets",
			path:       "/planet",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":[{"id":1,"name":"Tatooine","population":200000,"terrain":"desert","climate":"arid"}]}`,
		},
		{
			name:       "get planet",
			path:       "/planet/1",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":{"id":1,"name":"Tatooine","population":200000,"terrain":"desert","climate":"arid"}}`,
		},
		{
			name:       "missing planet",
			path:       "/planet/99",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"msg":"El planeta con id 99 no existe"}`,
		},
		{
			name:       "non numeric planet id",
			path:       "/planet/abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"msg":"ID inválido"}`,
		},
		{
			name:       "zero planet id",
			path:       "/planet/0",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"msg":"ID inválido"}`,
		},
		{
			name:       "get vehicle",
			path:       "/vehicles/1",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":{"id":1,"name":"Snowspeeder","model":"t-47 airspeeder"}}`,
		},
		{
			name:       "vehicle pilots",
			path:       "/vehicles/1/pilots",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"ok","results":[{"id":1,"name":"Luke Skywalker","height":1.72,"mass":77,"is_active":true,"planet_id":1}]}`,
		},
		{
			name:       "pilots of missing vehicle",
			path:       "/vehicles/5/pilots",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"msg":"El vehículo con id 5 no existe"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestCatalogEmptyListsAreArrays(t *testing.T) {
	router := newTestRouter(catalogtest.NewMemoryRepository())

	for _, path := range []string{"/users", "/people", "/planet", "/vehicles"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, `{"msg":"ok","results":[]}`, rr.Body.String(), path)
	}
}

func TestCatalogStoreFailureIsInternalError(t *testing.T) {
	repo := seeded()
	repo.Err = errors.New("connection reset")
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/planet/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"msg":"Error interno del servidor"}`, rr.Body.String())
}
