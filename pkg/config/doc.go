// Package config loads environment based configuration into plain structs
// using caarlos0/env field tags. A .env file is loaded once per process via
// godotenv when present, which keeps local development friction-free without
// affecting deployed environments.
//
// Each distinct struct type is parsed once and cached, so independent
// components can request the same configuration without re-reading the
// environment:
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"STORE_API_URL" envDefault:"http://localhost:1337"`
//	    Timeout time.Duration `env:"STORE_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
