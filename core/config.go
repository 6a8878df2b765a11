package core

import (
	"fmt"
	"strings"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DefaultRecentLimit is the number of summaries the query surface returns.
const DefaultRecentLimit = 50

type ServerConfig struct {
	Addr string `koanf:"addr" mapstructure:"addr"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" mapstructure:"driver"`
	DSN    string `koanf:"dsn" mapstructure:"dsn"`
}

type WebhookConfig struct {
	Secret string `koanf:"secret" mapstructure:"secret"`
	// RequireSignature rejects deliveries without a signature header. The
	// permissive skip-when-unconfigured behavior is opt-in for local
	// development only.
	RequireSignature bool `koanf:"require_signature" mapstructure:"require_signature"`
}

type FeedConfig struct {
	RecentLimit     int `koanf:"recent_limit" mapstructure:"recent_limit"`
	CacheTTLSeconds int `koanf:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

type Config struct {
	ServiceName string        `koanf:"service_name" mapstructure:"service_name"`
	Server      ServerConfig  `koanf:"server" mapstructure:"server"`
	Storage     StorageConfig `koanf:"storage" mapstructure:"storage"`
	Webhook     WebhookConfig `koanf:"webhook" mapstructure:"webhook"`
	Feed        FeedConfig    `koanf:"feed" mapstructure:"feed"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "repo-activity",
		Server: ServerConfig{
			Addr: ":5000",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "file:repo-activity.db?_foreign_keys=on",
		},
		Webhook: WebhookConfig{
			RequireSignature: true,
		},
		Feed: FeedConfig{
			RecentLimit: DefaultRecentLimit,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("core: server.addr is required")
	}
	driver := strings.TrimSpace(strings.ToLower(c.Storage.Driver))
	if driver != DriverSQLite && driver != DriverPostgres {
		return fmt.Errorf("core: storage.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("core: storage.dsn is required")
	}
	if c.Webhook.RequireSignature && strings.TrimSpace(c.Webhook.Secret) == "" {
		return fmt.Errorf("core: webhook.secret is required when webhook.require_signature is set")
	}
	if c.Feed.RecentLimit <= 0 {
		return fmt.Errorf("core: feed.recent_limit must be positive")
	}
	if c.Feed.CacheTTLSeconds < 0 {
		return fmt.Errorf("core: feed.cache_ttl_seconds must not be negative")
	}
	return nil
}
