// Package config loads application configuration from environment variables
// into env-tagged structs, wrapping github.com/joho/godotenv and
// github.com/caarlos0/env/v11.
//
// Each configuration type is parsed at most once per process and cached;
// twelve-factor deployments set real environment variables while local
// development relies on a .env file picked up automatically on first Load.
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
package config
