// Package config handles configuration for the gateway, loaded from
// environment variables with an optional YAML file overlay.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apiversion "github.com/scndcloud/api-version"
)

// Config represents the complete gateway configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Versions VersionsConfig `yaml:"versions"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
}

// VersionsConfig contains API version negotiation settings.
type VersionsConfig struct {
	// Supported lists the supported API versions in strictly increasing
	// order; the last one is the default.
	Supported []uint16 `yaml:"supported"`

	// ExemptPrefixes lists path prefixes that opt out of version rewriting,
	// e.g. "/metrics".
	ExemptPrefixes []string `yaml:"exempt_prefixes"`
}

// Load reads configuration from environment variables with sensible defaults.
// If GATEWAY_CONFIG_FILE names a YAML file, its values are applied on top.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("GATEWAY_SERVER_HOST", "0.0.0.0"),
			Port:           getEnvInt("GATEWAY_SERVER_PORT", 8080),
			ReadTimeout:    getEnvDuration("GATEWAY_SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvDuration("GATEWAY_SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvDuration("GATEWAY_SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes: getEnvInt("GATEWAY_SERVER_MAX_HEADER_BYTES", 1048576), // 1MB
		},
		Versions: VersionsConfig{
			Supported:      getEnvVersions("GATEWAY_API_VERSIONS", []uint16{0, 1}),
			ExemptPrefixes: getEnvList("GATEWAY_EXEMPT_PREFIXES", nil),
		},
	}

	// Apply YAML overlay if configured
	if file := os.Getenv("GATEWAY_CONFIG_FILE"); file != "" {
		if err := loadFile(cfg, file); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Log loaded configuration
	log.Printf("Configuration loaded:")
	log.Printf("  Server: %s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("  API versions: %v (default v%d)", cfg.Versions.Supported, cfg.Versions.Supported[len(cfg.Versions.Supported)-1])

	return cfg, nil
}

// VersionList converts the configured version numbers into library values.
func (c *Config) VersionList() []apiversion.Version {
	versions := make([]apiversion.Version, len(c.Versions.Supported))
	for i, n := range c.Versions.Supported {
		versions[i] = apiversion.Version(n)
	}
	return versions
}

// loadFile applies settings from a YAML file on top of cfg.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks if the configuration is valid.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", cfg.Server.Port)
	}

	// Validate timeouts
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be positive)", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be positive)", cfg.Server.WriteTimeout)
	}

	// Validate versions; the full non-empty/strictly-increasing check is
	// done by apiversion.NewSet at interceptor construction.
	if len(cfg.Versions.Supported) == 0 {
		return fmt.Errorf("no API versions configured")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid integer value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value.
// Accepts values like "30s", "5m", "1h"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %v", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated environment variable or returns a
// default value.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// getEnvVersions retrieves a comma-separated list of version numbers or
// returns a default value. Accepts values like "0,1,2".
func getEnvVersions(key string, defaultValue []uint16) []uint16 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var versions []uint16
	for _, item := range strings.Split(value, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(item), 10, 16)
		if err != nil {
			log.Printf("Warning: invalid version value for %s: %s, using default: %v", key, value, defaultValue)
			return defaultValue
		}
		versions = append(versions, uint16(n))
	}
	return versions
}

// GetLogLevel returns the configured log level.
func GetLogLevel() string {
	return getEnv("GATEWAY_LOG_LEVEL", "info")
}

// IsDebugMode returns true if debug mode is enabled.
func IsDebugMode() bool {
	return GetLogLevel() == "debug"
}
