package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
	"github.com/tair/starwars-api/internal/favorite/favoritetest"
	"github.com/tair/starwars-api/pkg/metrics"
)

type fixture struct {
	repo    *favoritetest.MemoryRepository
	pub     *favoritetest.RecordingPublisher
	gauge   prometheus.Gauge
	handler *FavoriteHandler
	router  *mux.Router
}

func newFixture() *fixture {
	repo := favoritetest.NewMemoryRepository()
	repo.Users[1] = catalog.User{ID: 1, Email: "luke@rebels.org", Password: "secret", IsActive: true}
	repo.Planets[5] = catalog.Planet{ID: 5, Name: "Tatooine", Population: 200000, Terrain: "desert", Climate: "arid"}
	repo.People[2] = catalog.Person{ID: 2, Name: "Leia Organa"}
	repo.Vehicles[4] = catalog.Vehicle{ID: 4, Name: "Snowspeeder"}

	reg := prometheus.NewRegistry()
	pub := &favoritetest.RecordingPublisher{}
	gauge := metrics.NewTotalGauge(reg, "test", "favorites", "Stored favorites")
	h := NewFavoriteHandler(repo, pub, metrics.NewHTTPMetrics(reg, "test"), gauge)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &fixture{repo: repo, pub: pub, gauge: gauge, handler: h, router: router}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestAddFavoritePlanetTwice(t *testing.T) {
	f := newFixture()

	rr := f.do(http.MethodPost, "/favorites/planets/5", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"msg": "ok",
		"total_favorites": 1,
		"results": {
			"favorite_people": [],
			"favorite_planets": [{"id":1,"user_id":1,"planet_id":5,"planet":{"id":5,"name":"Tatooine","population":200000,"terrain":"desert","climate":"arid"}}],
			"favorite_vehicles": []
		}
	}`, rr.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.gauge))

	rr = f.do(http.MethodPost, "/favorites/planets/5", `{"user_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg":"El planeta ya está en la lista de favoritos del usuario"}`, rr.Body.String())

	count, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, f.pub.Events, 1)
}

func TestAddFavoritePersonAndVehicleShapes(t *testing.T) {
	f := newFixture()

	rr := f.do(http.MethodPost, "/favorites/people/2", `{"user_id":1}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodPost, "/favorites/vehicles/4", `{"user_id":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"msg": "ok",
		"total_favorites": 2,
		"results": {
			"favorite_people": [{"id":1,"user_email":"luke@rebels.org","people_name":"Leia Organa"}],
			"favorite_planets": [],
			"favorite_vehicles": [{"id":2,"user_email":"luke@rebels.org","vehicle_name":"Snowspeeder"}]
		}
	}`, rr.Body.String())
}

func TestAddFavoriteBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		wantMsg string
	}{
		{name: "unknown user", path: "/favorites/planets/5", body: `{"user_id":9}`, wantMsg: "El usuario con id 9 no existe"},
		{name: "unknown planet", path: "/favorites/planets/6", body: `{"user_id":1}`, wantMsg: "El planeta con id 6 no existe"},
		{name: "unknown person", path: "/favorites/people/6", body: `{"user_id":1}`, wantMsg: "La persona con id 6 no existe"},
		{name: "unknown vehicle", path: "/favorites/vehicles/6", body: `{"user_id":1}`, wantMsg: "El vehículo con id 6 no existe"},
		{name: "missing user id", path: "/favorites/planets/5", body: `{}`, wantMsg: "Se requiere 'user_id' en el cuerpo JSON"},
		{name: "empty body", path: "/favorites/planets/5", body: ``, wantMsg: "Se requiere 'user_id' en el cuerpo JSON"},
		{name: "zero user id", path: "/favorites/planets/5", body: `{"user_id":0}`, wantMsg: "Se requiere 'user_id' en el cuerpo JSON"},
		{name: "malformed json", path: "/favorites/planets/5", body: `{"user_id":`, wantMsg: "Cuerpo JSON inválido"},
		{name: "wrong type", path: "/favorites/planets/5", body: `{"user_id":"one"}`, wantMsg: "Cuerpo JSON inválido"},
		{name: "trailing garbage", path: "/favorites/planets/5", body: `{"user_id":1}garbage`, wantMsg: "Cuerpo JSON inválido"},
		{name: "second object", path: "/favorites/planets/5", body: `{"user_id":1}{"user_id":1}`, wantMsg: "Cuerpo JSON inválido"},
		{name: "stray brace", path: "/favorites/planets/5", body: `{"user_id":1}}`, wantMsg: "Cuerpo JSON inválido"},
		{name: "non numeric target", path: "/favorites/planets/tatooine", body: `{"user_id":1}`, wantMsg: "ID inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			rr := f.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"msg":"`+tt.wantMsg+`"}`, rr.Body.String())

			count, err := f.repo.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestRemoveFavorite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.repo.Add(ctx, domain.KindPlanet, 1, 5))
	require.NoError(t, f.repo.Add(ctx, domain.KindPerson, 1, 2))
	f.handler.RefreshFavoritesGauge(ctx)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.gauge))

	rr := f.do(http.MethodDelete, "/favorites/planets/5", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"msg":"Planeta con ID 5 eliminado de los favoritos"}`, rr.Body.String())

	favs, err := f.repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favs.Planets)
	assert.Len(t, favs.People, 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.gauge))

	rr = f.do(http.MethodDelete, "/favorites/planets/5", `{"user_id":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"El planeta con ID 5 no está en la lista de favoritos del usuario"}`, rr.Body.String())

	rr = f.do(http.MethodDelete, "/favorites/people/2", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg":"Se requiere 'user_id' en el cuerpo JSON"}`, rr.Body.String())

	rr = f.do(http.MethodDelete, "/favorites/people/2", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"msg":"Persona con ID 2 eliminada de los favoritos"}`, rr.Body.String())

	rr = f.do(http.MethodDelete, "/favorites/vehicles/4", `{"user_id":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"El vehículo con ID 4 no está en la lista de favoritos del usuario"}`, rr.Body.String())
}

func TestGetUserFavorites(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.repo.Add(context.Background(), domain.KindPerson, 1, 2))

	rr := f.do(http.MethodGet, "/users/favorites/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"msg": "ok",
		"user": {"id":1,"email":"luke@rebels.org","is_active":true},
		"favorite_people": [{"id":1,"user_email":"luke@rebels.org","people_name":"Leia Organa"}],
		"favorite_planets": [],
		"favorite_vehicles": []
	}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "secret")

	rr = f.do(http.MethodGet, "/users/favorites/7", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"El usuario con id 7 no existe"}`, rr.Body.String())

	rr = f.do(http.MethodGet, "/users/favorites/x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	f := newFixture()
	f.repo.Err = errors.New("connection reset")

	rr := f.do(http.MethodPost, "/favorites/planets/5", `{"user_id":1}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"msg":"Error interno del servidor"}`, rr.Body.String())
}

func TestAddFavoriteAcceptsTrailingWhitespace(t *testing.T) {
	f := newFixture()

	rr := f.do(http.MethodPost, "/favorites/planets/5", "{\"user_id\":1}\n  ")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWatchFavoritesGaugeResyncs(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.repo.Add(ctx, domain.KindPlanet, 1, 5))
	f.gauge.Set(42)

	done := make(chan struct{})
	go func() {
		f.handler.WatchFavoritesGauge(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.gauge) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.repo.Add(ctx, domain.KindPerson, 1, 2))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.gauge) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
