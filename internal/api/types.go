package api

import (
	"time"

	"github.com/joestump/noticeboard/internal/store"
)

// --- Announcement types ---

// CreateAnnouncementRequest is the request body for POST /announcements.
type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// AnnouncementResponse is the JSON representation of a single announcement.
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAnnouncementResponse(a *store.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
	}
}

// SuccessResponse is returned by DELETE /announcements/{id}.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Auth types ---

// CredentialsRequest is the request body for POST /login and POST /register-admin.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Health ---

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Version string    `json:"version"`
}
