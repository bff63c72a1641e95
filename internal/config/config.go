// Package config loads server configuration from an optional YAML file, a
// .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory  = "memory"
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
	DriverPgx     = "pgx"
)

// Config is the full server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Redis  RedisConfig  `yaml:"redis"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host         string        `yaml:"host" env:"GAMESTORE_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"GAMESTORE_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"GAMESTORE_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"GAMESTORE_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"GAMESTORE_IDLE_TIMEOUT" env-default:"60s"`
	// CORSOrigins lists origins allowed to call the JSON API
	CORSOrigins []string `yaml:"cors_origins" env:"GAMESTORE_CORS_ORIGINS" env-separator:","`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// StoreConfig selects and connects the relational store
type StoreConfig struct {
	Driver string `yaml:"driver" env:"GAMESTORE_STORE_DRIVER" env-default:"memory"`
	// DSN wins over the individual connection fields when set
	DSN string `yaml:"dsn" env:"GAMESTORE_STORE_DSN"`

	// SQLite
	Path string `yaml:"path" env:"GAMESTORE_SQLITE_PATH" env-default:"gamestore.db"`

	// PostgreSQL
	Host     string `yaml:"host" env:"GAMESTORE_DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"GAMESTORE_DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"GAMESTORE_DB_USER" env-default:"gamestore"`
	Password string `yaml:"password" env:"GAMESTORE_DB_PASSWORD"`
	Database string `yaml:"database" env:"GAMESTORE_DB_NAME" env-default:"gamestore"`
	SSLMode  string `yaml:"sslmode" env:"GAMESTORE_DB_SSLMODE" env-default:"disable"`

	MaxOpenConns    int           `yaml:"max_open_conns" env:"GAMESTORE_DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"GAMESTORE_DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"GAMESTORE_DB_CONN_MAX_LIFETIME" env-default:"30m"`

	// Seed loads the sample catalog into an empty store at startup
	Seed bool `yaml:"seed" env:"GAMESTORE_SEED" env-default:"false"`
}

// ConnString returns the DSN to open for the configured driver
func (c StoreConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverPgx:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
		}
		return u.String()
	case DriverSQLite, DriverSQLite3:
		return c.Path
	default:
		return ""
	}
}

// RedisConfig enables the catalog cache when URL is set
type RedisConfig struct {
	URL          string        `yaml:"url" env:"REDIS_URL"`
	PoolSize     int           `yaml:"pool_size" env:"GAMESTORE_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"GAMESTORE_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	CatalogTTL   time.Duration `yaml:"catalog_ttl" env:"GAMESTORE_CATALOG_TTL" env-default:"5m"`
}

// Enabled reports whether a Redis URL is configured
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// AuthConfig controls sessions and password hashing
type AuthConfig struct {
	SessionDuration time.Duration `yaml:"session_duration" env:"GAMESTORE_SESSION_DURATION" env-default:"24h"`
	BcryptCost      int           `yaml:"bcrypt_cost" env:"GAMESTORE_BCRYPT_COST" env-default:"10"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level string `yaml:"level" env:"GAMESTORE_LOG_LEVEL" env-default:"info"`
}

// SlogLevel parses Level, falling back to info
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger returns a JSON logger writing to w at the configured level
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first if it exists. path may be empty, in which case
// only the environment and defaults are used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverSQLite3, DriverPgx:
	default:
		return fmt.Errorf("invalid store driver %q: must be one of memory, sqlite, sqlite3, pgx", c.Store.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.SessionDuration <= 0 {
		return errors.New("session duration must be positive")
	}
	return nil
}

// Usage describes every environment variable
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
