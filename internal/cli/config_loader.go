// filepath: internal/cli/config_loader.go
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"inkhub/internal/config"
	"inkhub/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INKHUB_SERVER_PORT.
const EnvPrefix = "INKHUB"

// flagKeys maps CLI flags onto config keys. Every config key is also
// readable from the environment as INKHUB_<SECTION>_<KEY>.
var flagKeys = map[string]string{
	"host":            "server.host",
	"port":            "server.port",
	"max-upload-size": "server.max_upload_size",
	"web-root":        "server.web_root",
	"storage-root":    "storage.root",
	"on-conflict":     "storage.on_conflict",
	"coerce-unknown":  "storage.coerce_unknown",
	"thumbnails":      "storage.thumbnails",
	"db-path":         "database.path",
	"news-backend":    "news.backend",
	"news-json-path":  "news.json_path",
	"ffmpeg-path":     "media.ffmpeg_path",
	"audit-enabled":   "logging.audit_enabled",
	"log-level":       "logging.level",
	"server-url":      "remote.url",
	"token-file":      "remote.token_file",
}

func registerServerFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "Interface to listen on. (Env: INKHUB_SERVER_HOST)")
	fs.Int("port", 0, "Port for the HTTP server. (Env: INKHUB_SERVER_PORT)")
	fs.String("max-upload-size", "", "Maximum size of one upload request, e.g. '64MB'. (Env: INKHUB_SERVER_MAX_UPLOAD_SIZE)")
	fs.String("web-root", "", "Directory holding the built frontend. (Env: INKHUB_SERVER_WEB_ROOT)")
	fs.String("storage-root", "", "Directory holding the category buckets. (Env: INKHUB_STORAGE_ROOT)")
	fs.String("on-conflict", "", "Name collision policy: 'suffix' or 'overwrite'. (Env: INKHUB_STORAGE_ON_CONFLICT)")
	fs.Bool("coerce-unknown", false, "Store unknown file types as .jpg instead of rejecting them. (Env: INKHUB_STORAGE_COERCE_UNKNOWN)")
	fs.Bool("thumbnails", false, "Generate JPEG thumbnails for uploaded images. (Env: INKHUB_STORAGE_THUMBNAILS)")
	fs.String("db-path", "", "Path to the sqlite database. (Env: INKHUB_DATABASE_PATH)")
	fs.String("news-backend", "", "News storage: 'json' or 'sqlite'. (Env: INKHUB_NEWS_BACKEND)")
	fs.String("news-json-path", "", "Path of the JSON news file. (Env: INKHUB_NEWS_JSON_PATH)")
	fs.String("ffmpeg-path", "", "Path to ffmpeg executable. (Env: INKHUB_MEDIA_FFMPEG_PATH)")
	fs.Bool("audit-enabled", false, "Enable audit logging. (Env: INKHUB_LOGGING_AUDIT_ENABLED=true)")
}

// newViper returns a viper instance reading INKHUB_* variables and the
// flags of cmd that map onto config keys.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	return v, bindErr
}

// initializeConfig loads and overrides configuration values.
// Precedence: flag > environment > config file > default.
func initializeConfig(cmd *cobra.Command) error {
	v, err := newViper(cmd)
	if err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	// 1. Config path: flag wins over INKHUB_CONFIG
	if f := cmd.Flags().Lookup("config"); (f == nil || !f.Changed) && v.GetString("config") != "" {
		cfgFile = v.GetString("config")
	}

	cfg, err = loadConfigFile(cfgFile)
	if err != nil {
		return err
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, v)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

// loadConfigFile reads path, treating a missing file as an empty config.
func loadConfigFile(path string) (*config.Config, error) {
	c, err := config.LoadConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config.Config{}, nil
		}
		return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}
	return c, nil
}

func applyOverrides(c *config.Config, v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	boolean := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	str("server.host", &c.Server.Host)
	if v.IsSet("server.port") {
		c.Server.Port = v.GetInt("server.port")
	}
	str("server.max_upload_size", &c.Server.MaxUploadSize)
	str("server.web_root", &c.Server.WebRoot)

	str("storage.root", &c.Storage.Root)
	str("storage.on_conflict", &c.Storage.OnConflict)
	boolean("storage.coerce_unknown", &c.Storage.CoerceUnknown)
	boolean("storage.thumbnails", &c.Storage.Thumbnails)

	str("database.path", &c.Database.Path)
	str("news.backend", &c.News.Backend)
	str("news.json_path", &c.News.JSONPath)

	str("auth.secret", &c.Auth.Secret)
	str("auth.password_hash", &c.Auth.PasswordHash)
	str("auth.token_ttl", &c.Auth.TokenTTL)
	boolean("auth.refresh_accept_expired", &c.Auth.RefreshAcceptExpired)

	str("logging.level", &c.Logging.Level)
	boolean("logging.audit_enabled", &c.Logging.AuditEnabled)

	str("media.ffmpeg_path", &c.Media.FFmpegPath)

	str("housekeeping.interval", &c.Housekeeping.Interval)
	str("housekeeping.temp_max_age", &c.Housekeeping.TempMaxAge)
}
