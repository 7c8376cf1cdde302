package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/store"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

type adminsAPIHandler struct {
	admins store.AdminStore
}

// registerAdminRoutes registers admin provisioning routes. Registration is
// only open to an already authenticated admin.
func registerAdminRoutes(r chi.Router, admins store.AdminStore, bearer *auth.BearerTokenMiddleware) {
	h := &adminsAPIHandler{admins: admins}
	r.With(bearer.Authenticate).Post("/register-admin", h.Register)
}

// Register creates another admin principal.
// POST /register-admin
//
// @Summary      Register an admin
// @Description  Creates a new admin. Requires an existing admin's token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "New admin credentials"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /register-admin [post]
func (h *adminsAPIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required", "BAD_REQUEST")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required", "BAD_REQUEST")
		return
	}
	if len(req.Password) > maxPasswordBytes {
		writeError(w, http.StatusBadRequest, "password is too long", "BAD_REQUEST")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeStoreError(w, "hash password", err)
		return
	}

	_, err = h.admins.Create(r.Context(), email, hash)
	if errors.Is(err, store.ErrDuplicateAdmin) {
		writeError(w, http.StatusBadRequest, "admin already exists", "BAD_REQUEST")
		return
	}
	if err != nil {
		writeStoreError(w, "register admin", err)
		return
	}

	if caller := auth.IdentityFromContext(r.Context()); caller != nil {
		log.Printf("api: admin %s registered by %s", email, caller.Email)
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "admin registered"})
}
