package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"EcoFinds/internal/config"
	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
	"EcoFinds/internal/storefront"
	"EcoFinds/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	ctx := context.Background()

	store, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatal("open storage", zap.Error(err), zap.String("driver", cfg.StorageDriver))
	}

	registry := prometheus.NewRegistry()

	h, err := storefront.NewHandler(ctx, storefront.Deps{
		Log:            log,
		Service:        service,
		Registry:       registry,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		JWTSecret:      cfg.JWTSecret,
		KV:             store,
		Notifier:       notify.NewLogNotifier(log),
	})
	if err != nil {
		log.Fatal("init storefront", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openKV(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return kv.NewMemKV(), nil

	case "file":
		return kv.NewFileKV(cfg.DataDir)

	case "postgres":
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := kv.NewPostgresKV(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return kv.NewRedisKV(rdb), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
