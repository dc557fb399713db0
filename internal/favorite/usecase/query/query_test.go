package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
	"github.com/tair/starwars-api/internal/favorite/favoritetest"
)

func TestGetUserFavorites(t *testing.T) {
	ctx := context.Background()
	repo := favoritetest.NewMemoryRepository()
	repo.Users[1] = catalog.User{ID: 1, Email: "han@falcon.io"}
	repo.Planets[3] = catalog.Planet{ID: 3, Name: "Corellia"}
	require.NoError(t, repo.Add(ctx, domain.KindPlanet, 1, 3))

	h := NewGetUserFavoritesHandler(repo)

	user, favs, err := h.Handle(ctx, GetUserFavoritesQuery{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "han@falcon.io", user.Email)
	require.Len(t, favs.Planets, 1)
	assert.Equal(t, "Corellia", favs.Planets[0].Planet.Name)

	_, _, err = h.Handle(ctx, GetUserFavoritesQuery{UserID: 2})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCountFavorites(t *testing.T) {
	ctx := context.Background()
	repo := favoritetest.NewMemoryRepository()
	repo.Users[1] = catalog.User{ID: 1}
	require.NoError(t, repo.Add(ctx, domain.KindPlanet, 1, 3))
	require.NoError(t, repo.Add(ctx, domain.KindVehicle, 1, 3))

	count, err := NewCountFavoritesHandler(repo).Handle(ctx, CountFavoritesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
