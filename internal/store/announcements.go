package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLAnnouncementStore is the sqlx-backed implementation of AnnouncementStore.
type SQLAnnouncementStore struct {
	db *sqlx.DB
}

// NewSQLAnnouncementStore creates a new SQLAnnouncementStore.
func NewSQLAnnouncementStore(db *sqlx.DB) *SQLAnnouncementStore {
	return &SQLAnnouncementStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *SQLAnnouncementStore) q(query string) string { return s.db.Rebind(query) }

// ListAll returns every announcement, newest first.
func (s *SQLAnnouncementStore) ListAll(ctx context.Context) ([]*Announcement, error) {
	items := []*Announcement{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, title, message, type, created_at
		FROM announcements
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	// Drivers hand back the stored instant in their own zone.
	for _, a := range items {
		a.CreatedAt = a.CreatedAt.UTC()
	}
	return items, nil
}

// Insert stores a new announcement and returns the stored record.
func (s *SQLAnnouncementStore) Insert(ctx context.Context, title, message, typ string) (*Announcement, error) {
	a, err := NewAnnouncement(title, message, typ)
	if err != nil {
		return nil, fmt.Errorf("new announcement: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO announcements (id, title, message, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), a.ID, a.Title, a.Message, a.Type, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	return a, nil
}

// DeleteByID removes the announcement with the given id and reports whether a row was removed.
func (s *SQLAnnouncementStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM announcements WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	return rows > 0, nil
}
