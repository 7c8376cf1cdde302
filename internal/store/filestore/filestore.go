// Package filestore keeps announcements and admins in a single JSON document.
//
// Every mutation rewrites the whole document: the new content is written to
// a temporary file next to the target, synced, and renamed over it, so a
// crash mid-write leaves the previous document intact.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/joestump/noticeboard/internal/store"
)

// Store implements store.AnnouncementStore and store.AdminStore on top of a
// JSON file. The mutex only serializes read-modify-write cycles within this
// process; every call re-reads the file.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// New returns a Store persisting to path on fs.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

type document struct {
	Announcements []announcementRecord `json:"announcements"`
	Admins        []adminRecord        `json:"admins"`
}

type announcementRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type adminRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r announcementRecord) toStore() *store.Announcement {
	typ := r.Type
	if typ == "" {
		typ = store.DefaultType
	}
	return &store.Announcement{
		ID:        r.ID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      typ,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (r adminRecord) toStore() *store.Admin {
	return &store.Admin{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

// load reads the document. A missing file is an empty document.
func (s *Store) load() (*document, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var doc document
	if len(data) == 0 {
		return &doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return &doc, nil
}

// save atomically replaces the file with doc.
func (s *Store) save(doc *document) (err error) {
	if doc.Announcements == nil {
		doc.Announcements = []announcementRecord{}
	}
	if doc.Admins == nil {
		doc.Admins = []adminRecord{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = s.fs.Chmod(tmp.Name(), s.fileMode()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = s.fs.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// fileMode is the mode of the existing document, or defaultFileMode when
// there is none yet. Temp files are created 0600 and would otherwise
// narrow the document's permissions on every write.
func (s *Store) fileMode() os.FileMode {
	info, err := s.fs.Stat(s.path)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

const defaultFileMode os.FileMode = 0o644

// ListAll returns every announcement, newest first.
func (s *Store) ListAll(ctx context.Context) ([]*store.Announcement, error) {
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]*store.Announcement, 0, len(doc.Announcements))
	for _, r := range doc.Announcements {
		items = append(items, r.toStore())
	}
	slices.SortStableFunc(items, func(a, b *store.Announcement) int {
		switch {
		case store.Newer(a, b):
			return -1
		case store.Newer(b, a):
			return 1
		default:
			return 0
		}
	})
	return items, nil
}

// Insert appends a new announcement and rewrites the file.
func (s *Store) Insert(ctx context.Context, title, message, typ string) (*store.Announcement, error) {
	a, err := store.NewAnnouncement(title, message, typ)
	if err != nil {
		return nil, fmt.Errorf("new announcement: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	doc.Announcements = append(doc.Announcements, announcementRecord{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
	})
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteByID removes the announcement with the given id and reports whether one was removed.
// The file is left untouched when nothing matches.
func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	n := len(doc.Announcements)
	doc.Announcements = slices.DeleteFunc(doc.Announcements, func(r announcementRecord) bool {
		return r.ID == id
	})
	if len(doc.Announcements) == n {
		return false, nil
	}
	if err := s.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Create adds an admin. Returns store.ErrDuplicateAdmin if the email is taken.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (*store.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Admins {
		if r.Email == email {
			return nil, store.ErrDuplicateAdmin
		}
	}

	a := store.NewAdmin(email, passwordHash)
	doc.Admins = append(doc.Admins, adminRecord{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	})
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByEmail returns the admin matching email, or store.ErrNotFound.
func (s *Store) GetByEmail(ctx context.Context, email string) (*store.Admin, error) {
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Admins {
		if r.Email == email {
			return r.toStore(), nil
		}
	}
	return nil, store.ErrNotFound
}

// UpdatePasswordHash replaces the stored hash for the admin with the given id.
func (s *Store) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Admins {
		if doc.Admins[i].ID == id {
			doc.Admins[i].PasswordHash = passwordHash
			return s.save(doc)
		}
	}
	return store.ErrNotFound
}
