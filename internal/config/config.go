// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig holds the optional persistence mirror settings. When URI is
// empty the engine runs purely in memory, which is the reference behavior.
type DatabaseConfig struct {
	URI string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	AllowedOrigins []string
	SeedDemoData   bool
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env from the working directory or the project root when
	// running from cmd/engine. Missing files are fine.
	envLocations := []string{
		".env",
		"../../.env",
	}
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			break
		}
	}

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	config := &Config{
		Server:         serverConfig,
		Database:       &DatabaseConfig{URI: os.Getenv("MONGODB_URI")},
		AllowedOrigins: []string{"*"},
		SeedDemoData:   os.Getenv("SEED_DEMO_DATA") == "true",
		Debug:          os.Getenv("DEBUG") == "true",
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	return config, nil
}
