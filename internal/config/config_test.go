package config

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// clearEnv unsets every variable load consults for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, "NOTICEBOARD_") {
			unsetForTest(t, k)
		}
	}
	for _, k := range []string{"ADMIN_EMAIL", "ADMIN_PASSWORD", "JWT_SECRET", "PORT"} {
		unsetForTest(t, k)
	}
}

func unsetForTest(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "") // registers restore on cleanup
	_ = os.Unsetenv(k)
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := load(afero.NewMemMapFs(), "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":3000" {
		t.Errorf("addr = %q, want :3000", cfg.HTTP.Addr)
	}
	if cfg.HTTP.APIPrefix != "/api" {
		t.Errorf("api prefix = %q, want /api", cfg.HTTP.APIPrefix)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("cors origins = %v, want [*]", cfg.HTTP.CORSOrigins)
	}
	if cfg.Storage.Backend != BackendSQL {
		t.Errorf("backend = %q, want sql", cfg.Storage.Backend)
	}
	if cfg.DB.Driver != "sqlite3" || cfg.DB.DSN != "db.sqlite" {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.File.Path != "announcements.json" {
		t.Errorf("file path = %q", cfg.File.Path)
	}
	if cfg.Mongo.Database != "noticeboard" {
		t.Errorf("mongo database = %q", cfg.Mongo.Database)
	}
	if cfg.Token.TTL != 24*time.Hour {
		t.Errorf("ttl = %s, want 24h", cfg.Token.TTL)
	}
	if cfg.Admin.Email != "admin@example.com" || cfg.Admin.Password != "pw" || cfg.Token.Secret != "secret" {
		t.Errorf("legacy env not honoured: %+v %+v", cfg.Admin, cfg.Token)
	}
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("NOTICEBOARD_ADMIN_EMAIL", "root@example.com")
	t.Setenv("NOTICEBOARD_HTTP_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("NOTICEBOARD_TOKEN_TTL", "90m")

	cfg, err := load(afero.NewMemMapFs(), "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Admin.Email != "root@example.com" {
		t.Errorf("email = %q, want root@example.com", cfg.Admin.Email)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[0] != want[0] || cfg.HTTP.CORSOrigins[1] != want[1] {
		t.Errorf("cors origins = %v, want %v", cfg.HTTP.CORSOrigins, want)
	}
	if cfg.Token.TTL != 90*time.Minute {
		t.Errorf("ttl = %s", cfg.Token.TTL)
	}
}

func TestLoad_PortOverridesAddr(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("PORT", "8081")

	cfg, err := load(afero.NewMemMapFs(), "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8081" {
		t.Errorf("addr = %q, want :8081", cfg.HTTP.Addr)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	fs := afero.NewMemMapFs()
	yaml := "storage:\n  backend: file\nfile:\n  path: /var/lib/noticeboard/board.json\n"
	if err := afero.WriteFile(fs, "/app/noticeboard.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(fs, "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.File.Path != "/var/lib/noticeboard/board.json" {
		t.Errorf("file path = %q", cfg.File.Path)
	}
}

func TestLoad_YAMLCORSOriginsList(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	fs := afero.NewMemMapFs()
	yaml := "http:\n  cors_origins:\n    - https://board.example.com\n    - https://admin.example.com\n"
	if err := afero.WriteFile(fs, "/app/noticeboard.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(fs, "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"https://board.example.com", "https://admin.example.com"}
	if !slices.Equal(cfg.HTTP.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.HTTP.CORSOrigins, want)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "from-env")
	fs := afero.NewMemMapFs()
	dotenv := "ADMIN_EMAIL=dot@example.com\nADMIN_PASSWORD=from-dotenv\nJWT_SECRET=dot-secret\n"
	if err := afero.WriteFile(fs, "/app/.env", []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(fs, "/app")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Admin.Email != "dot@example.com" || cfg.Token.Secret != "dot-secret" {
		t.Errorf(".env values not applied: %+v %+v", cfg.Admin, cfg.Token)
	}
	if cfg.Admin.Password != "from-env" {
		t.Errorf("password = %q, want existing env to win over .env", cfg.Admin.Password)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing admin email", map[string]string{"ADMIN_EMAIL": ""}, "ADMIN_EMAIL"},
		{"missing admin password", map[string]string{"ADMIN_PASSWORD": ""}, "ADMIN_PASSWORD"},
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad ttl", map[string]string{"NOTICEBOARD_TOKEN_TTL": "soon"}, "TOKEN_TTL"},
		{"zero ttl", map[string]string{"NOTICEBOARD_TOKEN_TTL": "0s"}, "positive"},
		{"unknown backend", map[string]string{"NOTICEBOARD_STORAGE_BACKEND": "redis"}, "unsupported storage backend"},
		{"mongo without uri", map[string]string{"NOTICEBOARD_STORAGE_BACKEND": "mongo"}, "MONGO_URI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := load(afero.NewMemMapFs(), "/app")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
