package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

// ListVehiclesQuery represents the query to list all vehicles
type ListVehiclesQuery struct{}

// ListVehiclesHandler handles list vehicles query
type ListVehiclesHandler struct {
	repo domain.CatalogRepository
}

// NewListVehiclesHandler creates a new list vehicles handler
func NewListVehiclesHandler(repo domain.CatalogRepository) *ListVehiclesHandler {
	return &ListVehiclesHandler{repo: repo}
}

// Handle executes the list vehicles query
func (h *ListVehiclesHandler) Handle(ctx context.Context, query ListVehiclesQuery) ([]domain.Vehicle, error) {
	vehicles, err := h.repo.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

// GetVehicleQuery represents the query to get a vehicle by ID
type GetVehicleQuery struct {
	ID uint
}

// GetVehicleHandler handles get vehicle query
type GetVehicleHandler struct {
	repo domain.CatalogRepository
}

// NewGetVehicleHandler creates a new get vehicle handler
func NewGetVehicleHandler(repo domain.CatalogRepository) *GetVehicleHandler {
	return &GetVehicleHandler{repo: repo}
}

// Handle executes the get vehicle query
func (h *GetVehicleHandler) Handle(ctx context.Context, query GetVehicleQuery) (*domain.Vehicle, error) {
	if query.ID == 0 {
		return nil, domain.ErrInvalidID
	}

	vehicle, err := h.repo.FindVehicle(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}

	return vehicle, nil
}

// ListPilotsQuery represents the query to list the pilots of a vehicle
type ListPilotsQuery struct {
	VehicleID uint
}

// ListPilotsHandler handles list pilots query
type ListPilotsHandler struct {
	repo domain.CatalogRepository
}

// NewListPilotsHandler creates a new list pilots handler
func NewListPilotsHandler(repo domain.CatalogRepository) *ListPilotsHandler {
	return &ListPilotsHandler{repo: repo}
}

// Handle returns the people piloting the vehicle. An unknown vehicle is
// reported as not found rather than as an empty list.
func (h *ListPilotsHandler) Handle(ctx context.Context, query ListPilotsQuery) ([]domain.Person, error) {
	if query.VehicleID == 0 {
		return nil, domain.ErrInvalidID
	}

	if _, err := h.repo.FindVehicle(ctx, query.VehicleID); err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}

	pilots, err := h.repo.ListPilots(ctx, query.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pilots: %w", err)
	}

	people := make([]domain.Person, 0, len(pilots))
	for _, p := range pilots {
		people = append(people, p.Person)
	}
	return people, nil
}
