package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by StoreConfig.Driver.
const (
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Bolt        BoltConfig
	Countdown   CountdownConfig
	Alert       AlertConfig
	Features    FeaturesConfig
	UI          UIConfig
	Notify      NotifyConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreConfig struct {
	Driver                string
	BulkDeleteConcurrency int
	HealthInterval        time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL       string
	Password  string
	DB        int
	Namespace string
}

type BoltConfig struct {
	Path   string
	Bucket string
}

type CountdownConfig struct {
	TickInterval time.Duration
	Timezone     string
}

type AlertConfig struct {
	WindowDays int
}

// FeaturesConfig toggles the optional capabilities of the task manager.
type FeaturesConfig struct {
	Selection bool
	Toasts    bool
}

type UIConfig struct {
	Theme string
}

type NotifyConfig struct {
	FeedSize     int
	RedisChannel string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "todo"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Store: StoreConfig{
			Driver:                strings.ToLower(getString("STORE_DRIVER", DriverBolt)),
			BulkDeleteConcurrency: getInt("BULK_DELETE_CONCURRENCY", 8),
			HealthInterval:        getDuration("STORE_HEALTH_INTERVAL", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "todo_db"),
			User:            getString("DB_USER", "todo_user"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:       getString("REDIS_URL", "redis://localhost:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        getInt("REDIS_DB", 0),
			Namespace: getString("REDIS_NAMESPACE", "todo"),
		},
		Bolt: BoltConfig{
			Path:   getString("BOLTDB_PATH", "./data/tasks.db"),
			Bucket: getString("BOLTDB_BUCKET", "tasks"),
		},
		Countdown: CountdownConfig{
			TickInterval: getDuration("COUNTDOWN_TICK", time.Second),
			Timezone:     getString("APP_TIMEZONE", "Local"),
		},
		Alert: AlertConfig{
			WindowDays: getInt("ALERT_WINDOW_DAYS", 8),
		},
		Features: FeaturesConfig{
			Selection: getBool("FEATURE_SELECTION", true),
			Toasts:    getBool("FEATURE_TOASTS", true),
		},
		UI: UIConfig{
			Theme: strings.ToLower(getString("UI_THEME", "light")),
		},
		Notify: NotifyConfig{
			FeedSize:     getInt("NOTIFY_FEED_SIZE", 100),
			RedisChannel: os.Getenv("NOTIFY_REDIS_CHANNEL"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverBolt, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Countdown.TickInterval < time.Second {
		return fmt.Errorf("COUNTDOWN_TICK must be at least 1s, got %s", c.Countdown.TickInterval)
	}
	if c.Alert.WindowDays <= 0 {
		return fmt.Errorf("ALERT_WINDOW_DAYS must be positive, got %d", c.Alert.WindowDays)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves the configured timezone used for zone-less deadlines.
func (c *Config) Location() (*time.Location, error) {
	if c.Countdown.Timezone == "" || c.Countdown.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Countdown.Timezone)
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
