package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQL   = "sql"
	BackendFile  = "file"
	BackendMongo = "mongo"
)

type Config struct {
	HTTP struct {
		Addr        string
		APIPrefix   string
		CORSOrigins []string
	}
	Storage struct {
		Backend string
	}
	DB struct {
		Driver string
		DSN    string
	}
	File struct {
		Path string
	}
	Mongo struct {
		URI      string
		Database string
	}
	Admin struct {
		Email    string
		Password string
	}
	Token struct {
		Secret string
		TTL    time.Duration
	}
}

// Load reads config from an optional .env file, the environment
// (NOTICEBOARD_ prefix plus the legacy ADMIN_EMAIL, ADMIN_PASSWORD,
// JWT_SECRET and PORT names) and an optional noticeboard.yaml.
func Load() (*Config, error) {
	return load(afero.NewOsFs(), ".")
}

func load(fs afero.Fs, dir string) (*Config, error) {
	if err := loadDotEnv(fs, filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix("NOTICEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("noticeboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read noticeboard.yaml: %w", err)
		}
	}

	_ = v.BindEnv("admin.email", "NOTICEBOARD_ADMIN_EMAIL", "ADMIN_EMAIL")
	_ = v.BindEnv("admin.password", "NOTICEBOARD_ADMIN_PASSWORD", "ADMIN_PASSWORD")
	_ = v.BindEnv("token.secret", "NOTICEBOARD_TOKEN_SECRET", "JWT_SECRET")
	_ = v.BindEnv("http.port", "NOTICEBOARD_HTTP_PORT", "PORT")

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.api_prefix", "/api")
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("storage.backend", BackendSQL)
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "db.sqlite")
	v.SetDefault("file.path", "announcements.json")
	v.SetDefault("mongo.database", "noticeboard")
	v.SetDefault("token.ttl", "24h")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	if port := strings.TrimSpace(v.GetString("http.port")); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.APIPrefix = v.GetString("http.api_prefix")
	cfg.HTTP.CORSOrigins = splitList(v.GetStringSlice("http.cors_origins"))
	cfg.Storage.Backend = strings.ToLower(v.GetString("storage.backend"))
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.File.Path = v.GetString("file.path")
	cfg.Mongo.URI = v.GetString("mongo.uri")
	cfg.Mongo.Database = v.GetString("mongo.database")
	cfg.Admin.Email = strings.TrimSpace(v.GetString("admin.email"))
	cfg.Admin.Password = v.GetString("admin.password")
	cfg.Token.Secret = v.GetString("token.secret")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTICEBOARD_TOKEN_TTL: %w", err)
	}
	cfg.Token.TTL = ttl

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendSQL:
		if c.DB.Driver == "" {
			return fmt.Errorf("NOTICEBOARD_DB_DRIVER is required (sqlite3, mysql, postgres)")
		}
		if c.DB.DSN == "" {
			return fmt.Errorf("NOTICEBOARD_DB_DSN is required")
		}
	case BackendFile:
		if c.File.Path == "" {
			return fmt.Errorf("NOTICEBOARD_FILE_PATH is required")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("NOTICEBOARD_MONGO_URI is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q: must be sql, file, or mongo", c.Storage.Backend)
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("NOTICEBOARD_TOKEN_TTL must be positive, got %s", c.Token.TTL)
	}
	return nil
}

// loadDotEnv exports variables from path that are not already set.
// A missing file is not an error.
func loadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for k, val := range vars {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// splitList flattens a YAML list or a comma separated env value.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
