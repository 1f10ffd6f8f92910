package postgres

import (
	"testing"
	"time"

	"github.com/fastygo/todo/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL:             "postgres://todo_user:secret@db:5432/todo_db?sslmode=disable",
		MaxOpenConns:    12,
		MaxIdleConns:    3,
		MaxConnLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MaxConns != 12 || cfg.MinConns != 3 || cfg.MaxConnLifetime != time.Minute {
		t.Errorf("limits = %d/%d/%s", cfg.MaxConns, cfg.MinConns, cfg.MaxConnLifetime)
	}
	if cfg.ConnConfig.Host != "db" || cfg.ConnConfig.Database != "todo_db" {
		t.Errorf("conn = %s/%s", cfg.ConnConfig.Host, cfg.ConnConfig.Database)
	}
}

func TestPoolConfigIgnoresIdleAboveMax(t *testing.T) {
	cfg, err := poolConfig(config.DatabaseConfig{
		URL:          "postgres://u@localhost/db",
		MaxOpenConns: 2,
		MaxIdleConns: 5,
	})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MinConns > cfg.MaxConns {
		t.Errorf("min %d exceeds max %d", cfg.MinConns, cfg.MaxConns)
	}
}

func TestPoolConfigRejectsBadURL(t *testing.T) {
	if _, err := poolConfig(config.DatabaseConfig{URL: "postgres://%zz"}); err == nil {
		t.Error("expected a parse error")
	}
}
