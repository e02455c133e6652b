package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Auth       AuthConfig
	Log        LogConfig
}

type DatabaseConfig struct {
	// Path is the SQLite database file.
	Path          string
	BusyTimeoutMS int
}

type AuthConfig struct {
	// PasswordHasher selects the digest used for new registrations:
	// "sha256" or "bcrypt".
	PasswordHasher string

	// SessionSecret signs session cookies. Sessions are disabled when empty.
	SessionSecret     string
	SessionTTLMinutes int
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Path:          getEnv("DB_PATH", "users.db"),
		BusyTimeoutMS: getEnvInt("DB_BUSY_TIMEOUT_MS", 5000),
	}

	authConfig := AuthConfig{
		PasswordHasher:    strings.ToLower(getEnv("PASSWORD_HASHER", "sha256")),
		SessionSecret:     strings.TrimSpace(getEnv("SESSION_SECRET", "")),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),
	}

	logConfig := LogConfig{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 5000),
		Database:   dbConfig,
		Auth:       authConfig,
		Log:        logConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}
