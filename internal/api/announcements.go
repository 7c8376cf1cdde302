package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/metrics"
	"github.com/joestump/noticeboard/internal/store"
)

// announcementsAPIHandler provides REST handlers for announcements.
type announcementsAPIHandler struct {
	announcements store.AnnouncementStore
}

// registerAnnouncementRoutes registers announcement routes on r.
// Reads are public; writes go through the bearer guard.
func registerAnnouncementRoutes(r chi.Router, announcements store.AnnouncementStore, bearer *auth.BearerTokenMiddleware) {
	h := &announcementsAPIHandler{announcements: announcements}
	r.Get("/announcements", h.List)
	r.With(bearer.Authenticate).Post("/announcements", h.Create)
	r.With(bearer.Authenticate).Delete("/announcements/{id}", h.Delete)
}

// List returns every announcement, newest first.
// GET /announcements
//
// @Summary      List announcements
// @Description  Returns all announcements, newest first. No authentication required.
// @Tags         Announcements
// @Produce      json
// @Success      200  {array}   AnnouncementResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /announcements [get]
func (h *announcementsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.announcements.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, "list announcements", err)
		return
	}

	resp := make([]AnnouncementResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, toAnnouncementResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create stores a new announcement.
// POST /announcements
//
// @Summary      Create an announcement
// @Description  Title and message are required and trimmed. Type defaults to "info".
// @Tags         Announcements
// @Accept       json
// @Produce      json
// @Param        body  body      CreateAnnouncementRequest  true  "Announcement to create"
// @Success      200   {object}  AnnouncementResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /announcements [post]
func (h *announcementsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	title, message, typ, err := store.NormalizeAnnouncement(req.Title, req.Message, req.Type)
	if errors.Is(err, store.ErrTitleRequired) || errors.Is(err, store.ErrMessageRequired) {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid announcement", "BAD_REQUEST")
		return
	}

	a, err := h.announcements.Insert(r.Context(), title, message, typ)
	if err != nil {
		writeStoreError(w, "create announcement", err)
		return
	}
	metrics.AnnouncementsCreatedTotal.Inc()

	writeJSON(w, http.StatusOK, toAnnouncementResponse(a))
}

// Delete removes an announcement by id.
// DELETE /announcements/{id}
//
// @Summary      Delete an announcement
// @Tags         Announcements
// @Produce      json
// @Param        id   path      string  true  "Announcement ID"
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /announcements/{id} [delete]
func (h *announcementsAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.announcements.DeleteByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, "delete announcement", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
		return
	}
	metrics.AnnouncementsDeletedTotal.Inc()

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
