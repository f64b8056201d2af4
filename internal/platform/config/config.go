// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a
strongly-typed Go struct, providing early validation and default values.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the demonlist API server.
type Config struct {
	ServerPort  string `env:"PORT"        envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	RedisURL string `env:"REDIS_URL,required"`

	// SecretFile is the path of the PEM public key file used to verify the
	// pre-authenticated principal handed to the core (spec §1: the core
	// never issues or signs tokens itself).
	SecretFile string `env:"SECRET_FILE,required"`

	// LIST_SIZE / EXTENDED_LIST_SIZE draw the boundaries the record
	// submission pipeline checks against (main list, extended list,
	// legacy list).
	ListSize         int `env:"LIST_SIZE"          envDefault:"75"`
	ExtendedListSize int `env:"EXTENDED_LIST_SIZE" envDefault:"150"`

	// MaintenanceMode short-circuits every non-GET request with
	// ReadOnlyMaintenance when true.
	MaintenanceMode bool `env:"MAINTENANCE_MODE" envDefault:"false"`

	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// defaultOriginSuffix is the production frontend's origin suffix; operators
// add more via EXTRA_ORIGINS (comma-separated) for staging/preview domains.
const defaultOriginSuffix = "pointercrate.com"

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }
func (c *Config) IsProduction() bool  { return c.Environment == "production" }

// AllowedOriginSuffixes returns the set of origin suffixes the CORS
// middleware accepts in production, combining the built-in frontend
// domain with any operator-configured extras.
func (c *Config) AllowedOriginSuffixes() []string {
	suffixes := []string{defaultOriginSuffix}
	if c.ExtraOrigins == "" {
		return suffixes
	}
	for _, extra := range strings.Split(c.ExtraOrigins, ",") {
		extra = strings.TrimSpace(extra)
		if extra != "" {
			suffixes = append(suffixes, extra)
		}
	}
	return suffixes
}
