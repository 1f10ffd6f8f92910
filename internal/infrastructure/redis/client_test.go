package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/fastygo/todo/internal/config"
)

func TestOptionsOverrides(t *testing.T) {
	opts, err := options(config.RedisConfig{URL: "redis://cache:6380/1", Password: "secret", DB: 4})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "secret" || opts.DB != 4 {
		t.Errorf("options = %s %q %d", opts.Addr, opts.Password, opts.DB)
	}
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	mr.Close()
	if _, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()}, nil); err == nil {
		t.Error("expected an error once the server is gone")
	}
}
