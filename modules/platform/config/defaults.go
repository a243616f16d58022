package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultPageLimit is the page size requested from list endpoints
	DefaultPageLimit = 10
)

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Version:    "1",
		API:        DefaultAPIConfig(),
		Pagination: DefaultPaginationConfig(),
		Logger:     DefaultLoggerConfig(),
		Server:     DefaultServerConfig(),
		UI:         DefaultUIConfig(),
	}
}

// DefaultAPIConfig returns default backend settings
func DefaultAPIConfig() *APIConfig {
	return &APIConfig{
		URL:            "http://localhost:8080/api",
		TimeoutSeconds: 30,
	}
}

// DefaultPaginationConfig returns default paging settings
func DefaultPaginationConfig() *PaginationConfig {
	return &PaginationConfig{PageLimit: DefaultPageLimit}
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     "info",
		FilePath:  "",
		MaxSizeMB: 10,
	}
}

// DefaultServerConfig returns default websocket bridge settings
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Listen:      "127.0.0.1:9470",
		MetricsPath: "/metrics",
		WSPath:      "/ws",
	}
}

// DefaultUIConfig returns default rendering settings
func DefaultUIConfig() *UIConfig {
	return &UIConfig{Color: "auto"}
}

// applyDefaults fills every section missing from a parsed file
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.API == nil {
		cfg.API = DefaultAPIConfig()
	} else if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = DefaultAPIConfig().TimeoutSeconds
	}
	if cfg.Pagination == nil || cfg.Pagination.PageLimit <= 0 {
		cfg.Pagination = DefaultPaginationConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultLoggerConfig()
	}
	if cfg.Server == nil {
		cfg.Server = DefaultServerConfig()
	}
	if cfg.UI == nil {
		cfg.UI = DefaultUIConfig()
	}
}

// GetUserConfigDir returns the user's config directory for parttrack
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "parttrack"), nil
}
