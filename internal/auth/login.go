package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joestump/noticeboard/internal/store"
)

// ErrInvalidCredentials is returned for any failed login. It never says
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator verifies admin credentials and issues tokens.
type Authenticator struct {
	admins store.AdminStore
	tokens *TokenService
}

// dummyHash is compared against when the email is unknown. It is a valid
// bcrypt hash at DefaultCost that no submitted password is expected to match.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// NewAuthenticator creates an Authenticator over the given admin store.
func NewAuthenticator(admins store.AdminStore, tokens *TokenService) *Authenticator {
	return &Authenticator{admins: admins, tokens: tokens}
}

// Login checks email and password against the stored bcrypt hash and returns
// a signed token on success. Unknown emails still pay for a bcrypt
// comparison so response time does not reveal which admins exist.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := a.admins.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		CheckPassword(dummyHash, password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup admin: %w", err)
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return a.tokens.Issue(Identity{AdminID: admin.ID, Email: admin.Email})
}

// EnsureAdmin makes sure an admin with email exists and that password
// verifies against its stored hash. It is used at startup to provision the
// configured admin; a changed password replaces the stored hash.
func EnsureAdmin(ctx context.Context, admins store.AdminStore, email, password string) (*store.Admin, error) {
	existing, err := admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if CheckPassword(existing.PasswordHash, password) {
			return existing, nil
		}
		hash, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		if err := admins.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
			return nil, fmt.Errorf("update admin %s: %w", email, err)
		}
		existing.PasswordHash = hash
		log.Printf("auth: updated password for configured admin %s", email)
		return existing, nil
	case errors.Is(err, store.ErrNotFound):
		hash, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		created, err := admins.Create(ctx, email, hash)
		if err != nil {
			return nil, fmt.Errorf("create admin %s: %w", email, err)
		}
		log.Printf("auth: provisioned configured admin %s", email)
		return created, nil
	default:
		return nil, fmt.Errorf("lookup admin %s: %w", email, err)
	}
}
