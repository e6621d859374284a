package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cityalgo/cityalgo/internal/logging"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level string
	}
	Catalog struct {
		Path string
	}
	Highlight struct {
		Style string
	}
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (CITYALGO_ prefix) and optional cityalgo.yaml.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("CITYALGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("cityalgo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "cityalgo.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("catalog.path", "")
	v.SetDefault("highlight.style", "github")
	v.SetDefault("session.lifetime", "8760h")
	v.SetDefault("insecure_cookies", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Catalog.Path = v.GetString("catalog.path")
	cfg.Highlight.Style = v.GetString("highlight.style")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid CITYALGO_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("CITYALGO_DB_DRIVER %q is not supported (sqlite3, mysql, postgres)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CITYALGO_DB_DSN is required")
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("invalid CITYALGO_LOG_LEVEL: %w", err)
	}

	return cfg, nil
}
