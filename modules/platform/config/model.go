package config

import "time"

// Config represents the main configuration
type Config struct {
	Version    string            `yaml:"version"`
	API        *APIConfig        `yaml:"api"`
	Pagination *PaginationConfig `yaml:"pagination,omitempty"`
	Logger     *LoggerConfig     `yaml:"logger,omitempty"`
	Server     *ServerConfig     `yaml:"server,omitempty"`
	UI         *UIConfig         `yaml:"ui,omitempty"`
}

// APIConfig describes the traceability backend the facades talk to
type APIConfig struct {
	URL            string `yaml:"url" json:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	Token          string `yaml:"token,omitempty" json:"-"`
	TokenFile      string `yaml:"token_file,omitempty" json:"token_file,omitempty"` // Read when Token is empty
}

// Timeout returns the request timeout as a duration
func (a *APIConfig) Timeout() time.Duration {
	if a == nil || a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// PaginationConfig holds list paging settings
type PaginationConfig struct {
	PageLimit int `yaml:"page_limit" json:"page_limit"` // Rows requested per page
}

// LoggerConfig represents logger configuration
type LoggerConfig struct {
	Level     string `yaml:"level" json:"level"`             // debug, info, warn, error
	FilePath  string `yaml:"file_path" json:"file_path"`     // Log file path (empty = stderr only)
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"` // Max log file size before rotation
}

// ServerConfig configures the websocket bridge
type ServerConfig struct {
	Listen      string `yaml:"listen" json:"listen"`
	MetricsPath string `yaml:"metrics_path" json:"metrics_path"`
	WSPath      string `yaml:"ws_path" json:"ws_path"`
}

// UIConfig holds terminal rendering settings
type UIConfig struct {
	Color string `yaml:"color" json:"color"` // auto, always, never
}
