package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/metrics"
)

type loginAPIHandler struct {
	authenticator *auth.Authenticator
}

func registerLoginRoutes(r chi.Router, authenticator *auth.Authenticator) {
	h := &loginAPIHandler{authenticator: authenticator}
	r.Post("/login", h.Login)
}

// Login exchanges admin credentials for a bearer token.
// POST /login
//
// Every credential failure, including a missing field, gets the same 401 so
// the response never says which field was wrong.
//
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "Admin credentials"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /login [post]
func (h *loginAPIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnauthorized, "invalid credentials", "UNAUTHORIZED")
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		log.Printf("api: login rejected from %s", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid credentials", "UNAUTHORIZED")
		return
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		writeStoreError(w, "login", err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
