package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/noticeboard/internal/build"
)

func registerHealthRoutes(r chi.Router) {
	r.Get("/health", health)
}

// health reports liveness. It never touches the store.
// GET /health
//
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "OK",
		Time:    time.Now().UTC(),
		Version: build.Version,
	})
}
