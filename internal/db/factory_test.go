package db

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"bare", "board:pw@tcp(db:3306)/noticeboard"},
		{"parseTime off", "board:pw@tcp(db:3306)/noticeboard?parseTime=false"},
		{"local zone", "board:pw@tcp(db:3306)/noticeboard?loc=Local&charset=utf8mb4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mysqlDSN(tt.dsn)
			if err != nil {
				t.Fatalf("mysqlDSN: %v", err)
			}
			cfg, err := mysql.ParseDSN(got)
			if err != nil {
				t.Fatalf("rewritten DSN %q does not parse: %v", got, err)
			}
			if !cfg.ParseTime {
				t.Errorf("%q: parseTime not enabled", got)
			}
			if cfg.Loc != time.UTC {
				t.Errorf("%q: loc = %v, want UTC", got, cfg.Loc)
			}
			if cfg.User != "board" || cfg.Passwd != "pw" || cfg.Addr != "db:3306" || cfg.DBName != "noticeboard" {
				t.Errorf("%q: connection fields changed: %+v", got, cfg)
			}
		})
	}
}

func TestMySQLDSN_Invalid(t *testing.T) {
	if _, err := mysqlDSN("not a dsn"); err == nil {
		t.Error("expected error for malformed DSN")
	}
}
