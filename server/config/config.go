package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gear6io/sift/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
	Upload  UploadConfig  `yaml:"upload"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // "json" or "console"
	FilePath   string `yaml:"file_path"`   // Path to log file
	Console    bool   `yaml:"console"`     // Whether to log to console
	MaxSize    int    `yaml:"max_size"`    // Max file size in MB
	MaxBackups int    `yaml:"max_backups"` // Max number of backup files
	MaxAge     int    `yaml:"max_age"`     // Max age in days
	Cleanup    bool   `yaml:"cleanup"`     // Whether to cleanup log file on startup
}

// SessionConfig bounds the session store
type SessionConfig struct {
	TTLMinutes  int `yaml:"ttl_minutes"`  // Idle lifetime of a session
	MaxSessions int `yaml:"max_sessions"` // Capacity before eviction
}

// UploadConfig bounds CSV ingestion
type UploadConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"` // Request body cap
	MaxRows       int `yaml:"max_rows"`         // Data row cap, 0 = unlimited
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			FilePath:   "logs/sift-server.log",
			Console:    true,
			MaxSize:    100, // 100MB
			MaxBackups: 3,
			MaxAge:     7,    // 7 days
			Cleanup:    true, // Cleanup log file on startup by default
		},
		Session: SessionConfig{
			TTLMinutes:  60,
			MaxSessions: 256,
		},
		Upload: UploadConfig{
			MaxFileSizeMB: 32,
			MaxRows:       250000,
		},
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New(ErrConfigFileReadFailed, "failed to read config file", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.New(ErrConfigFileParseFailed, "failed to parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.New(ErrConfigFileMarshalFailed, "failed to marshal config", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.New(ErrConfigFileWriteFailed, "failed to write config file", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Session.Validate(); err != nil {
		return errors.New(ErrSessionValidationFailed, "session validation failed", err)
	}
	if err := c.Upload.Validate(); err != nil {
		return errors.New(ErrUploadValidationFailed, "upload validation failed", err)
	}
	return nil
}

// Validate validates the session configuration
func (s *SessionConfig) Validate() error {
	if s.TTLMinutes <= 0 {
		return errors.New(ErrSessionTTLInvalid, "session ttl_minutes must be positive", nil)
	}
	if s.MaxSessions <= 0 {
		return errors.New(ErrSessionCapacityInvalid, "session max_sessions must be positive", nil)
	}
	return nil
}

// Validate validates the upload configuration
func (u *UploadConfig) Validate() error {
	if u.MaxFileSizeMB <= 0 {
		return errors.New(ErrUploadSizeInvalid, "upload max_file_size_mb must be positive", nil)
	}
	if u.MaxRows < 0 {
		return errors.New(ErrUploadRowsInvalid, "upload max_rows must not be negative", nil)
	}
	return nil
}

// GetHTTPPort returns the fixed HTTP server port
func (c *Config) GetHTTPPort() int {
	return HTTP_SERVER_PORT
}

// GetHTTPAddress returns the HTTP server bind address
func (c *Config) GetHTTPAddress() string {
	return DEFAULT_SERVER_ADDRESS
}

// GetHTTPAddr returns the listen address in host:port form
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.GetHTTPAddress(), c.GetHTTPPort())
}

// GetSessionTTL returns the session idle lifetime as a duration
func (c *Config) GetSessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// GetMaxUploadBytes returns the request body cap in bytes
func (c *Config) GetMaxUploadBytes() int64 {
	return int64(c.Upload.MaxFileSizeMB) * 1024 * 1024
}
