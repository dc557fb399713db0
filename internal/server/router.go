package server

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/starwars-api/docs"
	cataloghttp "github.com/tair/starwars-api/internal/catalog/delivery/http"
	favoritehttp "github.com/tair/starwars-api/internal/favorite/delivery/http"
	"github.com/tair/starwars-api/pkg/logger"
	"github.com/tair/starwars-api/pkg/middleware"
	"github.com/tair/starwars-api/pkg/ratelimit"
	"github.com/tair/starwars-api/pkg/response"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps holds everything the HTTP router serves
type RouterDeps struct {
	Catalog     *cataloghttp.CatalogHandler
	Favorites   *favoritehttp.FavoriteHandler
	DB          Pinger
	Gatherer    prometheus.Gatherer
	Middleware  *middleware.Config
	RateLimiter *ratelimit.RateLimiter // nil disables limiting
}

// Route is one entry of the sitemap
type Route struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// NewRouter assembles the HTTP API
func NewRouter(d RouterDeps) http.Handler {
	router := mux.NewRouter()
	middleware.Register(router, d.Middleware)
	router.Use(d.RateLimiter.Middleware)

	d.Catalog.RegisterRoutes(router)
	d.Favorites.RegisterRoutes(router)

	router.HandleFunc("/health", healthHandler(d.DB)).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.HandleFunc("/", sitemapHandler(router)).Methods("GET")

	return middleware.CORS(d.Middleware, router)
}

// healthHandler handles GET /health
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Health check failed")
			response.Error(w, http.StatusServiceUnavailable, "Base de datos no disponible")
			return
		}
		response.Error(w, http.StatusOK, response.OK)
	}
}

// sitemapHandler handles GET / with the list of registered routes
func sitemapHandler(router *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Results{Msg: response.OK, Results: Sitemap(router)})
	}
}

// Sitemap lists the registered path templates with their methods
func Sitemap(router *mux.Router) []Route {
	byPath := map[string][]string{}
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil || strings.HasPrefix(path, "/swagger") {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		byPath[path] = append(byPath[path], methods...)
		return nil
	})

	routes := make([]Route, 0, len(byPath))
	for path, methods := range byPath {
		sort.Strings(methods)
		routes = append(routes, Route{Path: path, Methods: methods})
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return routes
}
