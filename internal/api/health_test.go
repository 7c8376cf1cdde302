package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/joestump/noticeboard/internal/api"
	"github.com/joestump/noticeboard/internal/build"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := env.do("GET", path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		resp := decodeBody[api.HealthResponse](t, rec)
		if resp.Status != "OK" {
			t.Errorf("%s: status = %q, want OK", path, resp.Status)
		}
		if resp.Time.IsZero() {
			t.Errorf("%s: expected time to be set", path)
		}
		if resp.Version != build.Version {
			t.Errorf("%s: version = %q, want %q", path, resp.Version, build.Version)
		}
	}
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	_ = env.do("POST", "/login", `{"email":"nobody@example.com","password":"x"}`, "")

	rec := env.do("GET", "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "noticeboard_login_attempts_total") {
		t.Error("expected login attempts counter in exposition")
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do("GET", "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if resp := decodeBody[api.ErrorResponse](t, rec); resp.Code != "NOT_FOUND" {
		t.Errorf("code = %q", resp.Code)
	}
}
