package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where a config file is searched, in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kinoflow/config.yaml",
	"/etc/kinoflow/config.yml",
}

// ConfigPathEnvVar overrides the config file search with an explicit path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every optional setting pre-filled.
func defaultConfig() *Config {
	return &Config{
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: 5432,
		},
		Search: SearchConfig{
			Host: "localhost",
			Port: 9200,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			MinPageSize: 1,
			MaxPageSize: 100,
		},
		ETL: ETLConfig{
			StatePath:      "states/state.json",
			BatchLimit:     100,
			IdleInterval:   1 * time.Second,
			BackoffInitial: 100 * time.Millisecond,
			BackoffFactor:  2,
			BackoffCap:     10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in three layers: defaults, optional
// YAML file, then environment variables (highest priority).
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// ES_URL takes precedence over ES_HOST/ES_PORT per the external interface contract.
	if cfg.Search.URL == "" && cfg.Search.Host == "" {
		cfg.Search.Host = defaults.Search.Host
		cfg.Search.Port = defaults.Search.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps the enumerated environment variables (spec.md §6)
// onto koanf dotted paths. Unmapped variables are skipped rather than
// polluting the config tree.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"postgres_user":     "postgres.user",
		"postgres_password": "postgres.password",
		"postgres_db":       "postgres.db",
		"postgres_host":     "postgres.host",
		"postgres_port":     "postgres.port",

		"es_url":  "search.url",
		"es_host": "search.host",
		"es_port": "search.port",

		"redis_host": "redis.host",
		"redis_port": "redis.port",

		"server_host": "server.host",
		"server_port": "server.port",

		"log_level":  "logging.level",
		"log_format": "logging.format",

		"etl_state_path":    "etl.state_path",
		"etl_batch_limit":   "etl.batch_limit",
		"etl_idle_interval": "etl.idle_interval",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
