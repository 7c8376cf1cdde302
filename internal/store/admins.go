package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLAdminStore is the sqlx-backed implementation of AdminStore.
type SQLAdminStore struct {
	db *sqlx.DB
}

// NewSQLAdminStore creates a new SQLAdminStore.
func NewSQLAdminStore(db *sqlx.DB) *SQLAdminStore {
	return &SQLAdminStore{db: db}
}

func (s *SQLAdminStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new admin. Returns ErrDuplicateAdmin if the email is already registered.
//
// The existence check and the insert are not atomic; the unique index on
// admins.email still rejects a concurrent duplicate, surfacing as a driver error.
func (s *SQLAdminStore) Create(ctx context.Context, email, passwordHash string) (*Admin, error) {
	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateAdmin
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	a := NewAdmin(email, passwordHash)
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO admins (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`), a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

// GetByEmail returns the admin matching email, or ErrNotFound.
func (s *SQLAdminStore) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := s.db.GetContext(ctx, &a, s.q(`
		SELECT id, email, password_hash, created_at FROM admins WHERE email = ?
	`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

// UpdatePasswordHash replaces the stored hash for the given admin.
func (s *SQLAdminStore) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, s.q(`UPDATE admins SET password_hash = ? WHERE id = ?`), passwordHash, id)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
