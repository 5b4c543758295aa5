// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Collision policies for uploads whose normalized name already exists in the bucket.
const (
	ConflictSuffix    = "suffix"
	ConflictOverwrite = "overwrite"
)

// News storage backends.
const (
	NewsBackendJSON   = "json"
	NewsBackendSQLite = "sqlite"
)

// Config holds the application's configuration.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Storage      StorageConfig      `toml:"storage"`
	Database     DatabaseConfig     `toml:"database"`
	News         NewsConfig         `toml:"news"`
	Auth         AuthConfig         `toml:"auth"`
	Logging      LoggingConfig      `toml:"logging"`
	Media        MediaConfig        `toml:"media"`
	Housekeeping HousekeepingConfig `toml:"housekeeping"`

	// Runtime values computed by ParseAndValidate.
	MaxUploadSizeBytes   int64         `toml:"-"`
	TokenTTL             time.Duration `toml:"-"`
	HousekeepingInterval time.Duration `toml:"-"`
	TempMaxAge           time.Duration `toml:"-"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "32MB"
	WebRoot       string `toml:"web_root"`        // built SPA, optional
}

// StorageConfig controls where and how uploaded media is stored.
type StorageConfig struct {
	Root          string `toml:"root"`
	OnConflict    string `toml:"on_conflict"`
	CoerceUnknown bool   `toml:"coerce_unknown"`
	Thumbnails    bool   `toml:"thumbnails"`
}

// DatabaseConfig holds the sqlite configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// NewsConfig selects the news backend.
type NewsConfig struct {
	Backend  string `toml:"backend"`
	JSONPath string `toml:"json_path"`
}

// AuthConfig holds the credential record and token settings.
// PasswordHash and Secret are provisioned by `inkhub setup`.
type AuthConfig struct {
	PasswordHash         string `toml:"password_hash"`
	Secret               string `toml:"secret"`
	TokenTTL             string `toml:"token_ttl"`
	RefreshAcceptExpired bool   `toml:"refresh_accept_expired"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// MediaConfig holds media processing settings.
type MediaConfig struct {
	FFmpegPath string `toml:"ffmpeg_path"`
}

// HousekeepingConfig controls the background cleanup worker.
type HousekeepingConfig struct {
	Interval   string `toml:"interval"`
	TempMaxAge string `toml:"temp_max_age"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration back to a TOML file.
// The file holds the signing secret, so it is written owner-readable only.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// SetDefaults fills every unset value with its default.
func (c *Config) SetDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "64MB"
	}
	if c.Storage.Root == "" {
		c.Storage.Root = "uploads"
	}
	if c.Storage.OnConflict == "" {
		c.Storage.OnConflict = ConflictSuffix
	}
	if c.Database.Path == "" {
		c.Database.Path = "inkhub.db"
	}
	if c.News.Backend == "" {
		c.News.Backend = NewsBackendJSON
	}
	if c.News.JSONPath == "" {
		c.News.JSONPath = "data/news.json"
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "2h"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = "1h"
	}
	if c.Housekeeping.TempMaxAge == "" {
		c.Housekeeping.TempMaxAge = "24h"
	}
}

// ParseAndValidate processes configuration strings into runtime values.
func (c *Config) ParseAndValidate() error {
	c.SetDefaults()

	sizeBytes, err := parseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.MaxUploadSizeBytes = sizeBytes

	if c.TokenTTL, err = parsePositiveDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if c.HousekeepingInterval, err = parsePositiveDuration(c.Housekeeping.Interval); err != nil {
		return fmt.Errorf("invalid housekeeping interval: %w", err)
	}
	if c.TempMaxAge, err = parsePositiveDuration(c.Housekeeping.TempMaxAge); err != nil {
		return fmt.Errorf("invalid temp_max_age: %w", err)
	}

	switch c.Storage.OnConflict {
	case ConflictSuffix, ConflictOverwrite:
	default:
		return fmt.Errorf("invalid on_conflict %q: expected %q or %q", c.Storage.OnConflict, ConflictSuffix, ConflictOverwrite)
	}

	switch c.News.Backend {
	case NewsBackendJSON, NewsBackendSQLite:
	default:
		return fmt.Errorf("invalid news backend %q: expected %q or %q", c.News.Backend, NewsBackendJSON, NewsBackendSQLite)
	}

	return nil
}

// AuthConfigured reports whether the credential record and signing secret exist.
func (c *Config) AuthConfigured() bool {
	return c.Auth.PasswordHash != "" && c.Auth.Secret != ""
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", s)
	}
	return d, nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
