// Package config loads Kinoflow's configuration via Koanf v2.
//
// Loading order (later layers override earlier ones):
//
//  1. Defaults: sensible built-in values for every optional setting.
//  2. Config file: optional YAML file (config.yaml) for persistent settings.
//  3. Environment variables: override any setting, highest priority.
//
// # Quick Start
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	db, err := sourcedb.Open(ctx, cfg.Postgres.DSN())
//
// # Environment Variables
//
//	POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB, POSTGRES_HOST, POSTGRES_PORT
//	ES_URL (or ES_HOST + ES_PORT)
//	REDIS_HOST, REDIS_PORT
//	SERVER_HOST, SERVER_PORT
//	LOG_LEVEL, LOG_FORMAT
//
// # Thread Safety
//
// Config is immutable after LoadWithKoanf() returns and safe for concurrent
// read access from multiple goroutines.
package config
