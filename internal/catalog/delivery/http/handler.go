package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/catalog/usecase/query"
	"github.com/tair/starwars-api/pkg/cache"
	"github.com/tair/starwars-api/pkg/logger"
	"github.com/tair/starwars-api/pkg/metrics"
	"github.com/tair/starwars-api/pkg/response"
)

// CatalogHandler serves the read-only catalog endpoints
type CatalogHandler struct {
	listUsersHandler    *query.ListUsersHandler
	listPeopleHandler   *query.ListPeopleHandler
	getPersonHandler    *query.GetPersonHandler
	listPlanetsHandler  *query.ListPlanetsHandler
	getPlanetHandler    *query.GetPlanetHandler
	listVehiclesHandler *query.ListVehiclesHandler
	getVehicleHandler   *query.GetVehicleHandler
	listPilotsHandler   *query.ListPilotsHandler

	metrics *metrics.HTTPMetrics
	cache   *cache.ResponseCache
}

// NewCatalogHandler builds every query handler on top of repo
func NewCatalogHandler(repo domain.CatalogRepository, m *metrics.HTTPMetrics, c *cache.ResponseCache) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		query.NewListUsersHandler(repo),
		query.NewListPeopleHandler(repo),
		query.NewGetPersonHandler(repo),
		query.NewListPlanetsHandler(repo),
		query.NewGetPlanetHandler(repo),
		query.NewListVehiclesHandler(repo),
		query.NewGetVehicleHandler(repo),
		query.NewListPilotsHandler(repo),
		m, c,
	)
}

// NewCatalogHandlerWithDI is the constructor used by Wire
func NewCatalogHandlerWithDI(
	listUsersHandler *query.ListUsersHandler,
	listPeopleHandler *query.ListPeopleHandler,
	getPersonHandler *query.GetPersonHandler,
	listPlanetsHandler *query.ListPlanetsHandler,
	getPlanetHandler *query.GetPlanetHandler,
	listVehiclesHandler *query.ListVehiclesHandler,
	getVehicleHandler *query.GetVehicleHandler,
	listPilotsHandler *query.ListPilotsHandler,
	m *metrics.HTTPMetrics,
	c *cache.ResponseCache,
) *CatalogHandler {
	return &CatalogHandler{
		listUsersHandler:    listUsersHandler,
		listPeopleHandler:   listPeopleHandler,
		getPersonHandler:    getPersonHandler,
		listPlanetsHandler:  listPlanetsHandler,
		getPlanetHandler:    getPlanetHandler,
		listVehiclesHandler: listVehiclesHandler,
		getVehicleHandler:   getVehicleHandler,
		listPilotsHandler:   listPilotsHandler,
		metrics:             m,
		cache:               c,
	}
}

// route wraps fn with the response cache and request metrics
func (h *CatalogHandler) route(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
	return h.metrics.Wrap(endpoint, h.cache.Middleware(fn).ServeHTTP)
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.route("/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/people", h.route("/people", h.ListPeople)).Methods("GET")
	router.HandleFunc("/people/{id}", h.route("/people/{id}", h.GetPerson)).Methods("GET")
	router.HandleFunc("/planet", h.route("/planet", h.ListPlanets)).Methods("GET")
	router.HandleFunc("/planet/{id}", h.route("/planet/{id}", h.GetPlanet)).Methods("GET")
	router.HandleFunc("/vehicles", h.route("/vehicles", h.ListVehicles)).Methods("GET")
	router.HandleFunc("/vehicles/{id}", h.route("/vehicles/{id}", h.GetVehicle)).Methods("GET")
	router.HandleFunc("/vehicles/{id}/pilots", h.route("/vehicles/{id}/pilots", h.ListPilots)).Methods("GET")
}

// ListUsers handles GET /users
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUsersHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	results := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		results = append(results, u.Serialize())
	}
	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: results})
}

// ListPeople handles GET /people
func (h *CatalogHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.listPeopleHandler.Handle(r.Context(), query.ListPeopleQuery{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	results := make([]domain.PersonView, 0, len(people))
	for _, p := range people {
		results = append(results, p.Serialize())
	}
	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: results})
}

// GetPerson handles GET /people/{id}
func (h *CatalogHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID inválido")
		return
	}

	person, err := h.getPersonHandler.Handle(r.Context(), query.GetPersonQuery{ID: id})
	if err != nil {
		h.lookupError(w, r, err, fmt.Sprintf("La persona con id %d no existe", id))
		return
	}

	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: person.Serialize()})
}

// ListPlanets handles GET /planet
func (h *CatalogHandler) ListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.listPlanetsHandler.Handle(r.Context(), query.ListPlanetsQuery{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	results := make([]domain.PlanetView, 0, len(planets))
	for _, p := range planets {
		results = append(results, p.Serialize())
	}
	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: results})
}

// GetPlanet handles GET /planet/{id}
func (h *CatalogHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID inválido")
		return
	}

	planet, err := h.getPlanetHandler.Handle(r.Context(), query.GetPlanetQuery{ID: id})
	if err != nil {
		h.lookupError(w, r, err, fmt.Sprintf("El planeta con id %d no existe", id))
		return
	}

	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: planet.Serialize()})
}

// ListVehicles handles GET /vehicles
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.listVehiclesHandler.Handle(r.Context(), query.ListVehiclesQuery{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	results := make([]domain.VehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		results = append(results, v.Serialize())
	}
	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: results})
}

// GetVehicle handles GET /vehicles/{id}
func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID inválido")
		return
	}

	vehicle, err := h.getVehicleHandler.Handle(r.Context(), query.GetVehicleQuery{ID: id})
	if err != nil {
		h.lookupError(w, r, err, fmt.Sprintf("El vehículo con id %d no existe", id))
		return
	}

	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: vehicle.Serialize()})
}

// ListPilots handles GET /vehicles/{id}/pilots
func (h *CatalogHandler) ListPilots(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID inválido")
		return
	}

	pilots, err := h.listPilotsHandler.Handle(r.Context(), query.ListPilotsQuery{VehicleID: id})
	if err != nil {
		h.lookupError(w, r, err, fmt.Sprintf("El vehículo con id %d no existe", id))
		return
	}

	results := make([]domain.PersonView, 0, len(pilots))
	for _, p := range pilots {
		results = append(results, p.Serialize())
	}
	response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: results})
}

// ParseID reads a positive integer path variable
func ParseID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, mux.Vars(r)[name])
	}
	if id == 0 {
		return 0, domain.ErrInvalidID
	}
	return uint(id), nil
}

func (h *CatalogHandler) lookupError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		response.Error(w, http.StatusBadRequest, "ID inválido")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, notFoundMsg)
	default:
		h.internalError(w, r, err)
	}
}

func (h *CatalogHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Catalog request failed")
	response.Error(w, http.StatusInternalServerError, "Error interno del servidor")
}
