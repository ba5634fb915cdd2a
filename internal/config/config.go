// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// UpstreamConfig points at the remote posting service.
type UpstreamConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// CacheConfig selects and configures the author-cache backend.
type CacheConfig struct {
	Backend   string // "memory", "mongo" or "redis"
	MongoURI  string
	RedisAddr string
	TTL       time.Duration
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Upstream       *UpstreamConfig
	Cache          *CacheConfig
	JWTSecret      string
	AllowedOrigins []string
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

// DefaultCacheConfig provides default cache settings
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Backend: "memory",
		TTL:     24 * time.Hour,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env from the usual locations; a missing file is fine.
	envLocations := []string{
		".env",
		"../../.env",
	}
	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		_ = godotenv.Load()
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

	upstream := &UpstreamConfig{
		BaseURL: getEnvOrDefault("UPSTREAM_URL", "http://localhost:9090"),
		Token:   os.Getenv("UPSTREAM_TOKEN"),
		Timeout: 10 * time.Second,
	}
	if timeoutStr := os.Getenv("UPSTREAM_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			upstream.Timeout = timeout
		}
	}

	cacheConfig := DefaultCacheConfig()
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cacheConfig.Backend = backend
	}
	switch cacheConfig.Backend {
	case "memory":
	case "mongo":
		cacheConfig.MongoURI = os.Getenv("MONGODB_URI")
		if cacheConfig.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is required when CACHE_BACKEND is mongo")
		}
	case "redis":
		cacheConfig.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q (want memory, mongo or redis)", cacheConfig.Backend)
	}
	if ttlStr := os.Getenv("CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			cacheConfig.TTL = ttl
		}
	}

	config := &Config{
		Server:         serverConfig,
		Upstream:       upstream,
		Cache:          cacheConfig,
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "heron-feed-dev-secret"),
		AllowedOrigins: []string{"*"},
		Debug:          false,
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
