package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.DB.Driver != "sqlite3" || cfg.DB.DSN != "cityalgo.db" {
		t.Errorf("db = %s %s", cfg.DB.Driver, cfg.DB.DSN)
	}
	if cfg.SessionLifetime != 8760*time.Hour {
		t.Errorf("session lifetime = %v", cfg.SessionLifetime)
	}
	if cfg.Highlight.Style != "github" {
		t.Errorf("highlight style = %q", cfg.Highlight.Style)
	}
	if cfg.InsecureCookies {
		t.Error("insecure cookies enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CITYALGO_HTTP_ADDR", ":9090")
	t.Setenv("CITYALGO_DB_DRIVER", "postgres")
	t.Setenv("CITYALGO_DB_DSN", "postgres://localhost/cityalgo")
	t.Setenv("CITYALGO_LOG_LEVEL", "debug")
	t.Setenv("CITYALGO_CATALOG_PATH", "/etc/cityalgo/content.yaml")
	t.Setenv("CITYALGO_INSECURE_COOKIES", "true")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.DB.Driver)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Catalog.Path != "/etc/cityalgo/content.yaml" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if !cfg.InsecureCookies {
		t.Error("insecure cookies not set")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad lifetime", map[string]string{"CITYALGO_SESSION_LIFETIME": "forever"}, "SESSION_LIFETIME"},
		{"bad driver", map[string]string{"CITYALGO_DB_DRIVER": "oracle"}, "not supported"},
		{"bad log level", map[string]string{"CITYALGO_LOG_LEVEL": "loud"}, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
