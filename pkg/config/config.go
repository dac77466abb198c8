package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Static  StaticConfig
	Env     string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// SessionConfig holds session lifetime configuration
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// RedisConfig holds Redis configuration for the session store
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the credential store location and the bootstrap
// admin account created when the store is empty.
type AuthConfig struct {
	UsersFile     string
	BootstrapUser string
	BootstrapPass string
}

// StaticConfig points at the directory holding the panel, TV and login
// pages. Empty means no pages are served.
type StaticConfig struct {
	Dir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3333),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "panel_session"),
			TTL:        time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			UsersFile:     getEnv("USERS_FILE", "users.json"),
			BootstrapUser: getEnv("ADMIN_USER", "admin"),
			BootstrapPass: getEnv("ADMIN_PASS", ""),
		},
		Static: StaticConfig{
			Dir: getEnv("STATIC_DIR", ""),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// Addr returns the host:port the server listens on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
