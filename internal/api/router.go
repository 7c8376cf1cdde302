package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	BearerAuth    *auth.BearerTokenMiddleware
	Authenticator *auth.Authenticator
	Announcements store.AnnouncementStore
	Admins        store.AdminStore

	// APIPrefix mounts a second copy of the routes under the prefix.
	// Empty disables it.
	APIPrefix   string
	CORSOrigins []string
}

// NewRouter assembles the chi router with middleware and all routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(deps.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		registerRoutes(r, deps)
	})

	if prefix := normalizePrefix(deps.APIPrefix); prefix != "" {
		r.Route(prefix, func(r chi.Router) {
			registerRoutes(r, deps)
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
	})

	return r
}

func registerRoutes(r chi.Router, deps Deps) {
	r.Use(jsonContentType)

	registerHealthRoutes(r)
	registerLoginRoutes(r, deps.Authenticator)
	registerAnnouncementRoutes(r, deps.Announcements, deps.BearerAuth)
	registerAdminRoutes(r, deps.Admins, deps.BearerAuth)
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
