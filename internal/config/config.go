package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendCharm  = "charm"
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
	BlobsMinio    = "minio"
)

type Config struct {
	Backend  string       `mapstructure:"backend" validate:"oneof=charm sqlite rest"`
	Blobs    string       `mapstructure:"blobs" validate:"oneof=charm sqlite minio"`
	Username string       `mapstructure:"username"`
	Log      LogConfig    `mapstructure:"log"`
	Charm    CharmConfig  `mapstructure:"charm"`
	SQLite   SQLiteConfig `mapstructure:"sqlite"`
	REST     RESTConfig   `mapstructure:"rest"`
	Minio    MinioConfig  `mapstructure:"minio"`
	Web      WebConfig    `mapstructure:"web"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type CharmConfig struct {
	Host           string        `mapstructure:"host"`
	AutoSync       bool          `mapstructure:"auto_sync"`
	StaleThreshold time.Duration `mapstructure:"stale_threshold" validate:"gte=0"`
}

type SQLiteConfig struct {
	// Path is the database file. Empty means $XDG_DATA_HOME/notes/notes.db.
	Path string `mapstructure:"path"`
}

type RESTConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Token   string `mapstructure:"token"`
}

type MinioConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	Region    string        `mapstructure:"region"`
	URLExpiry time.Duration `mapstructure:"url_expiry" validate:"gte=1m,lte=168h"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// SlogLevel maps the configured level name to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Dir returns the configuration directory path.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notes")
}

// Load reads configFile, or config.yaml from the working directory or
// Dir() when configFile is empty. NOTES_* environment variables override
// file values, e.g. NOTES_REST_TOKEN for rest.token.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	setDefaults(v)

	v.SetEnvPrefix("NOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Every key gets a default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("blobs", BackendSQLite)
	v.SetDefault("username", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("charm.host", "charm.2389.dev")
	v.SetDefault("charm.auto_sync", true)
	v.SetDefault("charm.stale_threshold", time.Duration(0))
	v.SetDefault("sqlite.path", "")
	v.SetDefault("rest.base_url", "")
	v.SetDefault("rest.token", "")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "notes")
	v.SetDefault("minio.use_ssl", true)
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.url_expiry", 15*time.Minute)
	v.SetDefault("web.addr", "127.0.0.1:8080")
}
