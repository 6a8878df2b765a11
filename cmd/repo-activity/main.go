package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-repo-activity/command"
	"github.com/goliatone/go-repo-activity/core"
	activitymigrations "github.com/goliatone/go-repo-activity/migrations"
	"github.com/goliatone/go-repo-activity/query"
	sqlstore "github.com/goliatone/go-repo-activity/store/sql"
	"github.com/goliatone/go-repo-activity/transport"
	"github.com/goliatone/go-repo-activity/webhooks"
)

const envPrefix = "REPO_ACTIVITY_"

func main() {
	_, logger := glog.Resolve("repo-activity", nil, nil)
	logger = glog.Ensure(logger)

	runtime, err := runtimeOverrides(os.Args[1:])
	if err != nil {
		logger.Error("parse flags", "error", err.Error())
		os.Exit(2)
	}

	if err := run(logger, runtime); err != nil {
		logger.Error("startup failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger core.Logger, runtime core.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := core.DefaultConfig()
	provider := core.NewCfgxConfigProvider(envRawConfigLoader{})
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg, err := core.GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		return fmt.Errorf("resolve configuration: %w", err)
	}

	client, err := openPersistence(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	store, err := buildStore(cfg, client)
	if err != nil {
		return err
	}

	verifier := &webhooks.HubSignatureVerifier{
		Secret:           cfg.Webhook.Secret,
		RequireSignature: cfg.Webhook.RequireSignature,
	}
	processor := webhooks.NewProcessor(verifier, store, logger)

	handlers := &transport.Handlers{
		Ingest:      command.NewIngestWebhookCommand(processor),
		RecentFeed:  query.NewRecentActivityQuery(store),
		Logger:      logger,
		RecentLimit: cfg.Feed.RecentLimit,
	}
	server := transport.NewServer(cfg.Server.Addr, handlers, logger)

	logger.Info("repo-activity starting",
		"addr", cfg.Server.Addr,
		"driver", cfg.Storage.Driver,
		"require_signature", cfg.Webhook.RequireSignature,
		"cache_ttl_seconds", cfg.Feed.CacheTTLSeconds,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func openPersistence(ctx context.Context, cfg core.Config) (*persistence.Client, error) {
	driver := strings.TrimSpace(strings.ToLower(cfg.Storage.Driver))

	sqlDB, err := sql.Open(driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	var migrationDialect string
	switch driver {
	case core.DriverSQLite:
		migrationDialect = activitymigrations.DialectSQLite
	case core.DriverPostgres:
		migrationDialect = activitymigrations.DialectPostgres
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	var client *persistence.Client
	if migrationDialect == activitymigrations.DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
		client, err = persistence.New(persistenceConfig{cfg: cfg}, sqlDB, sqlitedialect.New())
	} else {
		client, err = persistence.New(persistenceConfig{cfg: cfg}, sqlDB, pgdialect.New())
	}
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("persistence client: %w", err)
	}

	_, err = activitymigrations.Register(ctx, func(_ context.Context, d string, _ string, fsys fs.FS) error {
		if d != migrationDialect {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, activitymigrations.WithValidationTargets(migrationDialect))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("register migrations: %w", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return client, nil
}

func buildStore(cfg core.Config, client *persistence.Client) (core.ActivityStore, error) {
	base, err := sqlstore.NewActivityStoreFromPersistence(client)
	if err != nil {
		return nil, fmt.Errorf("activity store: %w", err)
	}
	if cfg.Feed.CacheTTLSeconds <= 0 {
		return base, nil
	}

	cacheConfig := repositorycache.DefaultConfig()
	cacheConfig.TTL = time.Duration(cfg.Feed.CacheTTLSeconds) * time.Second
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("activity cache: %w", err)
	}
	feed, err := sqlstore.NewCachedActivityFeed(base, cacheService)
	if err != nil {
		return nil, fmt.Errorf("cached activity feed: %w", err)
	}
	return feed, nil
}

// runtimeOverrides parses command-line flags into the runtime configuration
// layer. Unset flags stay at their zero value and drop out of the merge, so
// anything given here wins over environment and defaults.
func runtimeOverrides(args []string) (core.Config, error) {
	flags := flag.NewFlagSet("repo-activity", flag.ContinueOnError)
	addr := flags.String("addr", "", "listen address override")
	driver := flags.String("db-driver", "", "storage driver override (sqlite3 or postgres)")
	dsn := flags.String("db-dsn", "", "storage dsn override")
	recentLimit := flags.Int("recent-limit", 0, "recent feed size override")
	cacheTTL := flags.Int("cache-ttl-seconds", 0, "recent feed cache ttl override")
	if err := flags.Parse(args); err != nil {
		return core.Config{}, err
	}

	var runtime core.Config
	runtime.Server.Addr = strings.TrimSpace(*addr)
	runtime.Storage.Driver = strings.TrimSpace(*driver)
	runtime.Storage.DSN = strings.TrimSpace(*dsn)
	runtime.Feed.RecentLimit = *recentLimit
	runtime.Feed.CacheTTLSeconds = *cacheTTL
	return runtime, nil
}

// persistenceConfig adapts core.Config to the getters go-persistence-bun
// expects.
type persistenceConfig struct {
	cfg core.Config
}

func (p persistenceConfig) GetDebug() bool {
	return false
}

func (p persistenceConfig) GetDriver() string {
	return strings.TrimSpace(strings.ToLower(p.cfg.Storage.Driver))
}

func (p persistenceConfig) GetServer() string {
	return p.cfg.Storage.DSN
}

func (p persistenceConfig) GetPingTimeout() time.Duration {
	return 5 * time.Second
}

func (p persistenceConfig) GetOtelIdentifier() string {
	return p.cfg.ServiceName
}

// envRawConfigLoader maps REPO_ACTIVITY_* environment variables into the raw
// configuration layer consumed by cfgx.
type envRawConfigLoader struct{}

func (envRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	raw := map[string]any{}
	server := map[string]any{}
	storage := map[string]any{}
	webhook := map[string]any{}
	feed := map[string]any{}

	if v, ok := lookupEnv("SERVICE_NAME"); ok {
		raw["service_name"] = v
	}
	if v, ok := lookupEnv("ADDR"); ok {
		server["addr"] = v
	}
	if v, ok := lookupEnv("DB_DRIVER"); ok {
		storage["driver"] = v
	}
	if v, ok := lookupEnv("DB_DSN"); ok {
		storage["dsn"] = v
	}
	if v, ok := lookupEnv("WEBHOOK_SECRET"); ok {
		webhook["secret"] = v
	}
	if v, ok := lookupEnv("REQUIRE_SIGNATURE"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse %sREQUIRE_SIGNATURE: %w", envPrefix, err)
		}
		webhook["require_signature"] = parsed
	}
	if v, ok := lookupEnv("RECENT_LIMIT"); ok {
		parsed, err := parsePositiveInt(v)
		if err != nil {
			return nil, fmt.Errorf("parse %sRECENT_LIMIT: %w", envPrefix, err)
		}
		feed["recent_limit"] = parsed
	}
	if v, ok := lookupEnv("CACHE_TTL_SECONDS"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse %sCACHE_TTL_SECONDS: %w", envPrefix, err)
		}
		feed["cache_ttl_seconds"] = parsed
	}

	if len(server) > 0 {
		raw["server"] = server
	}
	if len(storage) > 0 {
		raw["storage"] = storage
	}
	if len(webhook) > 0 {
		raw["webhook"] = webhook
	}
	if len(feed) > 0 {
		raw["feed"] = feed
	}
	return raw, nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func parsePositiveInt(value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, errors.New("value must be positive")
	}
	return parsed, nil
}
