package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joestump/noticeboard/internal/api"
	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/store"
	"github.com/joestump/noticeboard/internal/testutil"
)

const (
	testSecret        = "test-secret"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse"
)

// testEnv holds the stores and router needed for API integration tests.
type testEnv struct {
	Router        http.Handler
	Announcements *store.SQLAnnouncementStore
	Admins        *store.SQLAdminStore
	Tokens        *auth.TokenService
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// seeds the configured admin and wires up the full router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	announcements := store.NewSQLAnnouncementStore(db)
	admins := store.NewSQLAdminStore(db)

	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	if _, err := auth.EnsureAdmin(context.Background(), admins, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	router := api.NewRouter(api.Deps{
		BearerAuth:    auth.NewBearerTokenMiddleware(tokens),
		Authenticator: auth.NewAuthenticator(admins, tokens),
		Announcements: announcements,
		Admins:        admins,
		APIPrefix:     "/api",
	})
	return &testEnv{
		Router:        router,
		Announcements: announcements,
		Admins:        admins,
		Tokens:        tokens,
	}
}

// do sends a request through the router and returns the recorder.
func (env *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		authRequest(req, token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// adminToken signs a bearer token directly with the test secret. The admin
// id is a placeholder; the guard only checks the signature and claims.
func adminToken(t *testing.T, env *testEnv) string {
	t.Helper()
	tok, err := env.Tokens.Issue(auth.Identity{AdminID: "admin-id", Email: testAdminEmail})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v; body: %s", err, rec.Body.String())
	}
	return v
}
