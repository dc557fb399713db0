package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-api/internal/catalog/domain"
)

// ListPeopleQuery represents the query to list all people
type ListPeopleQuery struct{}

// ListPeopleHandler handles list people query
type ListPeopleHandler struct {
	repo domain.CatalogRepository
}

// NewListPeopleHandler creates a new list people handler
func NewListPeopleHandler(repo domain.CatalogRepository) *ListPeopleHandler {
	return &ListPeopleHandler{repo: repo}
}

// Handle executes the list people query
func (h *ListPeopleHandler) Handle(ctx context.Context, query ListPeopleQuery) ([]domain.Person, error) {
	people, err := h.repo.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	return people, nil
}

// GetPersonQuery represents the query to get a person by ID
type GetPersonQuery struct {
	ID uint
}

// GetPersonHandler handles get person query
type GetPersonHandler struct {
	repo domain.CatalogRepository
}

// NewGetPersonHandler creates a new get person handler
func NewGetPersonHandler(repo domain.CatalogRepository) *GetPersonHandler {
	return &GetPersonHandler{repo: repo}
}

// Handle executes the get person query
func (h *GetPersonHandler) Handle(ctx context.Context, query GetPersonQuery) (*domain.Person, error) {
	if query.ID == 0 {
		return nil, domain.ErrInvalidID
	}

	person, err := h.repo.FindPerson(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("person not found: %w", err)
	}

	return person, nil
}
