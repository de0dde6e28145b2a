package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultAppEnv        = "development"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultMigrationsDir = "./migrations"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DBPath            string
	MigrationsDir     string
	SeedDemo          bool
	SimulationWorkers int
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev" || c.AppEnv == "local"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: local development keeps its variables in .env.
	if err := loadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg := Config{
		AppEnv:            strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:              getEnv("PORT", defaultPort),
		DBPath:            getEnv("DB_PATH", defaultDBPath),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", defaultMigrationsDir),
		SeedDemo:          getEnvBool("SEED_DEMO", false),
		SimulationWorkers: getEnvInt("SIMULATION_WORKERS", 0),
	}

	if cfg.SeedDemo && !cfg.IsDev() {
		log.Warn().Str("app_env", cfg.AppEnv).Msg("SEED_DEMO is set outside development")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid boolean, using default")
		return fallback
	}
	return b
}
