package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file into the process environment when present.
// It reports whether a file was found; a missing file is not an error.
func LoadEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get for integer values; unparsable values fall back.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Settings holds process-level configuration shared by the commands.
type Settings struct {
	Port         string
	LogLevel     string
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	RedisAddr    string
	ScenarioPath string
	SeedPath     string
	Workers      int
}

// FromEnv reads Settings from the environment.
func FromEnv() Settings {
	return Settings{
		Port:         Get("PORT", "8080"),
		LogLevel:     Get("LOG_LEVEL", "info"),
		DBDriver:     Get("DB_DRIVER", "sqlite"),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisAddr:    Get("REDIS_ADDR", ""),
		ScenarioPath: Get("SCENARIO_PATH", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/roads.json"),
		Workers:      GetInt("WORKERS", 4),
	}
}

// DSN returns the data source name matching DBDriver.
func (s Settings) DSN() string {
	if s.DBDriver == "pgx" {
		return s.DatabaseURL
	}
	return s.DBPath
}
