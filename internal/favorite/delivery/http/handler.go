package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cataloghttp "github.com/tair/starwars-api/internal/catalog/delivery/http"
	catalog "github.com/tair/starwars-api/internal/catalog/domain"
	"github.com/tair/starwars-api/internal/favorite/domain"
	"github.com/tair/starwars-api/internal/favorite/usecase/command"
	"github.com/tair/starwars-api/internal/favorite/usecase/query"
	"github.com/tair/starwars-api/pkg/logger"
	"github.com/tair/starwars-api/pkg/metrics"
	"github.com/tair/starwars-api/pkg/response"
)

const (
	msgUserIDRequired = "Se requiere 'user_id' en el cuerpo JSON"
	msgInvalidJSON    = "Cuerpo JSON inválido"
	msgInvalidID      = "ID inválido"
	msgInternal       = "Error interno del servidor"
	msgUserNotFound   = "El usuario con id %d no existe"
)

// kindMessages holds the user-facing texts of one favorite kind
type kindMessages struct {
	kind      domain.Kind
	path      string
	notFound  string
	duplicate string
	removed   string
	absent    string
}

var kinds = []kindMessages{
	{
		kind:      domain.KindPlanet,
		path:      "planets",
		notFound:  "El planeta con id %d no existe",
		duplicate: "El planeta ya está en la lista de favoritos del usuario",
		removed:   "Planeta con ID %d eliminado de los favoritos",
		absent:    "El planeta con ID %d no está en la lista de favoritos del usuario",
	},
	{
		kind:      domain.KindPerson,
		path:      "people",
		notFound:  "La persona con id %d no existe",
		duplicate: "La persona ya está en la lista de favoritos del usuario",
		removed:   "Persona con ID %d eliminada de los favoritos",
		absent:    "La persona con ID %d no está en la lista de favoritos del usuario",
	},
	{
		kind:      domain.KindVehicle,
		path:      "vehicles",
		notFound:  "El vehículo con id %d no existe",
		duplicate: "El vehículo ya está en la lista de favoritos del usuario",
		removed:   "Vehículo con ID %d eliminado de los favoritos",
		absent:    "El vehículo con ID %d no está en la lista de favoritos del usuario",
	},
}

// FavoriteHandler serves the favorite endpoints
type FavoriteHandler struct {
	addHandler           *command.AddFavoriteHandler
	removeHandler        *command.RemoveFavoriteHandler
	userFavoritesHandler *query.GetUserFavoritesHandler
	countHandler         *query.CountFavoritesHandler

	metrics        *metrics.HTTPMetrics
	totalFavorites prometheus.Gauge
}

// NewFavoriteHandler builds the command and query handlers on top of repo
func NewFavoriteHandler(
	repo domain.FavoriteRepository,
	publisher domain.EventPublisher,
	m *metrics.HTTPMetrics,
	totalFavorites prometheus.Gauge,
) *FavoriteHandler {
	return NewFavoriteHandlerWithDI(
		command.NewAddFavoriteHandler(repo, publisher),
		command.NewRemoveFavoriteHandler(repo, publisher),
		query.NewGetUserFavoritesHandler(repo),
		query.NewCountFavoritesHandler(repo),
		m, totalFavorites,
	)
}

// NewFavoriteHandlerWithDI is the constructor used by Wire
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	userFavoritesHandler *query.GetUserFavoritesHandler,
	countHandler *query.CountFavoritesHandler,
	m *metrics.HTTPMetrics,
	totalFavorites prometheus.Gauge,
) *FavoriteHandler {
	return &FavoriteHandler{
		addHandler:           addHandler,
		removeHandler:        removeHandler,
		userFavoritesHandler: userFavoritesHandler,
		countHandler:         countHandler,
		metrics:              m,
		totalFavorites:       totalFavorites,
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/favorites/{user_id}",
		h.metrics.Wrap("/users/favorites/{user_id}", h.GetUserFavorites)).Methods("GET")

	for _, k := range kinds {
		endpoint := "/favorites/" + k.path + "/{id}"
		router.HandleFunc(endpoint, h.metrics.Wrap(endpoint, h.addFavorite(k))).Methods("POST")
		router.HandleFunc(endpoint, h.metrics.Wrap(endpoint, h.removeFavorite(k))).Methods("DELETE")
	}
}

// UserFavoritesResponse is the body of GET /users/favorites/{user_id}
type UserFavoritesResponse struct {
	Msg  string           `json:"msg"`
	User catalog.UserView `json:"user"`
	domain.UserFavoritesView
}

// AddFavoriteResponse is the body of a successful favorite creation
type AddFavoriteResponse struct {
	Msg            string                   `json:"msg"`
	TotalFavorites int                      `json:"total_favorites"`
	Results        domain.UserFavoritesView `json:"results"`
}

// GetUserFavorites handles GET /users/favorites/{user_id}
func (h *FavoriteHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := cataloghttp.ParseID(r, "user_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	user, favs, err := h.userFavoritesHandler.Handle(r.Context(), query.GetUserFavoritesQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, fmt.Sprintf(msgUserNotFound, userID))
			return
		}
		h.internalError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, UserFavoritesResponse{
		Msg:               response.OK,
		User:              user.Serialize(),
		UserFavoritesView: favs.Serialize(),
	})
}

// addFavorite handles POST /favorites/{kind}/{id}
func (h *FavoriteHandler) addFavorite(k kindMessages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := cataloghttp.ParseID(r, "id")
		if err != nil {
			response.Error(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		userID, msg := decodeUserID(r)
		if msg != "" {
			response.Error(w, http.StatusBadRequest, msg)
			return
		}

		favs, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
			Kind:     k.kind,
			UserID:   userID,
			TargetID: targetID,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserIDRequired):
				response.Error(w, http.StatusBadRequest, msgUserIDRequired)
			case errors.Is(err, domain.ErrUserNotFound):
				response.Error(w, http.StatusBadRequest, fmt.Sprintf(msgUserNotFound, userID))
			case errors.Is(err, k.kind.TargetNotFound()):
				response.Error(w, http.StatusBadRequest, fmt.Sprintf(k.notFound, targetID))
			case errors.Is(err, domain.ErrAlreadyFavorite):
				response.Error(w, http.StatusBadRequest, k.duplicate)
			default:
				h.internalError(w, r, err)
			}
			return
		}

		h.totalFavorites.Inc()

		response.JSON(w, http.StatusOK, AddFavoriteResponse{
			Msg:            response.OK,
			TotalFavorites: favs.Total(),
			Results:        favs.Serialize(),
		})
	}
}

// removeFavorite handles DELETE /favorites/{kind}/{id}
func (h *FavoriteHandler) removeFavorite(k kindMessages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := cataloghttp.ParseID(r, "id")
		if err != nil {
			response.Error(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		userID, msg := decodeUserID(r)
		if msg != "" {
			response.Error(w, http.StatusBadRequest, msg)
			return
		}

		err = h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
			Kind:     k.kind,
			UserID:   userID,
			TargetID: targetID,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserIDRequired):
				response.Error(w, http.StatusBadRequest, msgUserIDRequired)
			case errors.Is(err, domain.ErrFavoriteNotFound):
				response.Error(w, http.StatusNotFound, fmt.Sprintf(k.absent, targetID))
			default:
				h.internalError(w, r, err)
			}
			return
		}

		h.totalFavorites.Dec()

		response.JSON(w, http.StatusOK, response.Message{Msg: fmt.Sprintf(k.removed, targetID)})
	}
}

// decodeUserID reads {"user_id": n} from the body. A non-empty msg is the
// BadRequest text to return.
func decodeUserID(r *http.Request) (uint, string) {
	var req struct {
		UserID *uint `json:"user_id"`
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, msgUserIDRequired
		}
		return 0, msgInvalidJSON
	}
	// the body must hold exactly one JSON value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return 0, msgInvalidJSON
	}
	if req.UserID == nil {
		return 0, msgUserIDRequired
	}
	return *req.UserID, ""
}

// RefreshFavoritesGauge sets the stored favorites gauge from the database
func (h *FavoriteHandler) RefreshFavoritesGauge(ctx context.Context) {
	count, err := h.countHandler.Handle(ctx, query.CountFavoritesQuery{})
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to refresh favorites gauge")
		return
	}
	h.totalFavorites.Set(float64(count))
}

// WatchFavoritesGauge resyncs the favorites gauge every interval until ctx
// is done. Writes move the gauge by one in between.
func (h *FavoriteHandler) WatchFavoritesGauge(ctx context.Context, interval time.Duration) {
	h.RefreshFavoritesGauge(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.RefreshFavoritesGauge(ctx)
		}
	}
}

func (h *FavoriteHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Favorite request failed")
	response.Error(w, http.StatusInternalServerError, msgInternal)
}
