// Package config loads typed configuration from environment variables.
//
// Each package of the service declares a Config struct tagged for
// github.com/caarlos0/env; Load parses one of them after reading an optional
// .env file with github.com/joho/godotenv:
//
//	cfg, err := config.Load[sqlite.Config]()
//	if err != nil {
//		return err
//	}
//
// Tests pass WithEnvironment to parse from a map instead of the process
// environment.
package config
