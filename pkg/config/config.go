// pkg/config/config.go
//
// Tenant connection and store configuration. Read from
// ~/.config/metis/config.yaml (or /etc/metis), overridable via METIS_* env.

package config

import (
	"os"
	"path/filepath"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"
)

type Config struct {
	// Azure AD app registration used for the client-credentials flow.
	TenantID string `mapstructure:"tenant_id" validate:"required"`
	ClientID string `mapstructure:"client_id" validate:"required"`

	// ClientSecret is normally left empty here and resolved by pkg/secrets.
	ClientSecret string `mapstructure:"client_secret"`

	// GraphBaseURL allows pointing at a mock or national-cloud endpoint.
	GraphBaseURL string `mapstructure:"graph_base_url"`

	// StoreBackend selects where backups and the restore audit log live.
	StoreBackend string `mapstructure:"store_backend" validate:"oneof=file redis"`
	StateDir     string `mapstructure:"state_dir"`
	RedisURL     string `mapstructure:"redis_url"`
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/var/lib/metis"
	}
	return filepath.Join(home, ".local", "state", "metis")
}

// Load reads, defaults, and validates the Metis configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "metis"))
	}
	v.AddConfigPath("/etc/metis")

	v.SetEnvPrefix("METIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so AutomaticEnv feeds Unmarshal even when no
	// config file exists.
	v.SetDefault("tenant_id", "")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("graph_base_url", "https://graph.microsoft.com/v1.0")
	v.SetDefault("store_backend", StoreBackendFile)
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("redis_url", "redis://localhost:6379/0")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when env vars carry the required values.
		var notFound viper.ConfigFileNotFoundError
		if !cerr.As(err, &notFound) {
			return nil, cerr.Wrap(err, "reading metis config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cerr.Wrap(err, "unmarshalling metis config")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, cerr.WithHint(err,
			"set tenant_id and client_id in ~/.config/metis/config.yaml or METIS_TENANT_ID / METIS_CLIENT_ID")
	}

	if cfg.StoreBackend == StoreBackendRedis && cfg.RedisURL == "" {
		return nil, cerr.New("store_backend is redis but redis_url is empty")
	}

	return &cfg, nil
}
