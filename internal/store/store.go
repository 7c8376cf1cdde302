package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultType is the category applied when an announcement has none.
const DefaultType = "info"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAdmin is returned when registering an email that already has an admin record.
	ErrDuplicateAdmin = errors.New("admin already exists")
)

// Announcement is a single board entry. It is never updated in place.
type Announcement struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// Admin is a principal allowed to create and delete announcements.
type Admin struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// AnnouncementStore exposes all announcement data operations.
// Every backend returns ListAll newest-first; callers never re-sort.
type AnnouncementStore interface {
	ListAll(ctx context.Context) ([]*Announcement, error)
	Insert(ctx context.Context, title, message, typ string) (*Announcement, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// AdminStore exposes admin credential records.
type AdminStore interface {
	Create(ctx context.Context, email, passwordHash string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// NewAnnouncement builds a record with a fresh id and creation time.
// Ids are UUIDv7 so their string order follows creation order, which every
// backend uses to break createdAt ties. Timestamps are truncated to
// milliseconds so that all backends round-trip them exactly.
func NewAnnouncement(title, message, typ string) (*Announcement, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = DefaultType
	}
	return &Announcement{
		ID:        id.String(),
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

// NewAdmin builds an admin record with a fresh id.
func NewAdmin(email, passwordHash string) *Admin {
	return &Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Newer reports whether a sorts before b in newest-first order.
func Newer(a, b *Announcement) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
