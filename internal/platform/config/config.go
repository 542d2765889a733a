package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

const defaultPort = "3001"

// Config is the complete server configuration.
type Config struct {
	Server Server
	Log    Log
	Store  Store
	Redis  RedisConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Log selects the slog handler and level.
type Log struct {
	Level  string
	Format string
}

// Store selects and configures the directory backend.
type Store struct {
	Backend     string
	DatabaseURL string
	Seed        bool
}

// RedisConfig configures the go-redis client. Zero values keep go-redis defaults.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Config, error) {
	var cfg Config
	var err error

	addr := getenv("PHONEBOOK_ADDR")
	if addr == "" {
		port := getenv("PORT")
		if port == "" {
			port = defaultPort
		}
		addr = ":" + port
	}
	cfg.Server = Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}

	cfg.Log = Log{
		Level:  strings.ToLower(withDefault(getenv("LOG_LEVEL"), "info")),
		Format: strings.ToLower(withDefault(getenv("LOG_FORMAT"), "text")),
	}

	cfg.Store = Store{
		Backend:     strings.ToLower(withDefault(getenv("PHONEBOOK_STORE"), BackendMemory)),
		DatabaseURL: getenv("DATABASE_URL"),
		Seed:        true,
	}
	if v := getenv("PHONEBOOK_SEED"); v != "" {
		if cfg.Store.Seed, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("PHONEBOOK_SEED: %w", err)
		}
	}

	cfg.Redis.URL = getenv("REDIS_URL")
	if cfg.Redis.PoolSize, err = intEnv(getenv, "REDIS_POOL_SIZE"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv(getenv, "REDIS_MIN_IDLE_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv(getenv, "REDIS_DIAL_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv(getenv, "REDIS_READ_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv(getenv, "REDIS_WRITE_TIMEOUT"); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", BackendPostgres)
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the %s store", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown PHONEBOOK_STORE %q", c.Store.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intEnv(getenv func(string) string, key string) (int, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(getenv func(string) string, key string) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
