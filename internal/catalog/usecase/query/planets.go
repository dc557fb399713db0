package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

// ListPlanetsQuery represents the query to list all planets
type ListPlanetsQuery struct{}

// ListPlanetsHandler handles list planets query
type ListPlanetsHandler struct {
	repo domain.CatalogRepository
}

// NewListPlanetsHandler creates a new list planets handler
func NewListPlanetsHandler(repo domain.CatalogRepository) *ListPlanetsHandler {
	return &ListPlanetsHandler{repo: repo}
}

// Handle executes the list planets query
func (h *ListPlanetsHandler) Handle(ctx context.Context, query ListPlanetsQuery) ([]domain.Planet, error) {
	planets, err := h.repo.ListPlanets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}

	return planets, nil
}

// GetPlanetQuery represents the query to get a planet by ID
type GetPlanetQuery struct {
	ID uint
}

// GetPlanetHandler handles get planet query
type GetPlanetHandler struct {
	repo domain.CatalogRepository
}

// NewGetPlanetHandler creates a new get planet handler
func NewGetPlanetHandler(repo domain.CatalogRepository) *GetPlanetHandler {
	return &GetPlanetHandler{repo: repo}
}

// Handle executes the get planet query
func (h *GetPlanetHandler) Handle(ctx context.Context, query GetPlanetQuery) (*domain.Planet, error) {
	if query.ID == 0 {
		return nil, domain.ErrInvalidID
	}

	planet, err := h.repo.FindPlanet(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("planet not found: %w", err)
	}

	return planet, nil
}
