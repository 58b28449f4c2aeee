package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration for both the Query API and
// the ETL pipeline. Both binaries load the same struct; each uses only
// the sections relevant to it.
type Config struct {
	Postgres PostgresConfig `koanf:"postgres"`
	Search   SearchConfig   `koanf:"search"`
	Redis    RedisConfig    `koanf:"redis"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	ETL      ETLConfig      `koanf:"etl"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// PostgresConfig holds connection settings for the relational source of truth.
type PostgresConfig struct {
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DB       string `koanf:"db"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
}

// DSN returns a libpq-style connection string for pgx/stdlib.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DB,
	)
}

// SearchConfig holds connection settings for the Elasticsearch-backed search port.
// URL takes precedence over Host+Port when set, mirroring the ES_URL /
// ES_HOST+ES_PORT duality named in the external interface contract.
type SearchConfig struct {
	URL  string `koanf:"url"`
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addresses returns the list of Elasticsearch node addresses to dial.
func (c SearchConfig) Addresses() []string {
	if c.URL != "" {
		return []string{c.URL}
	}
	return []string{fmt.Sprintf("http://%s:%d", c.Host, c.Port)}
}

// RedisConfig holds connection settings for the TTL cache port.
type RedisConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addr returns the host:port dial address for go-redis.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerConfig holds HTTP server settings for the Query API.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port the HTTP server should bind to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig holds pagination and response limits shared by every endpoint.
type APIConfig struct {
	MinPageSize int `koanf:"min_page_size"`
	MaxPageSize int `koanf:"max_page_size"`
}

// ETLConfig holds pipeline tuning knobs.
type ETLConfig struct {
	// StatePath is where the JSON watermark file is persisted.
	StatePath string `koanf:"state_path"`
	// BatchLimit bounds how many source rows a single stream fetch selects.
	BatchLimit int `koanf:"batch_limit"`
	// IdleInterval is how long the orchestrator sleeps after an empty tick.
	IdleInterval time.Duration `koanf:"idle_interval"`
	// BackoffInitial, BackoffFactor, BackoffCap configure C2's retry schedule.
	BackoffInitial time.Duration `koanf:"backoff_initial"`
	BackoffFactor  float64       `koanf:"backoff_factor"`
	BackoffCap     time.Duration `koanf:"backoff_cap"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks required fields and basic value sanity.
func (c *Config) Validate() error {
	if c.Postgres.DB == "" || c.Postgres.User == "" {
		return fmt.Errorf("config: postgres.db and postgres.user are required")
	}
	if c.Search.URL == "" && c.Search.Host == "" {
		return fmt.Errorf("config: search.url or search.host is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("config: redis.host is required")
	}
	if c.API.MinPageSize < 1 || c.API.MaxPageSize < c.API.MinPageSize {
		return fmt.Errorf("config: api.min_page_size/max_page_size are invalid")
	}
	if c.ETL.BatchLimit < 1 {
		return fmt.Errorf("config: etl.batch_limit must be positive")
	}
	return nil
}
