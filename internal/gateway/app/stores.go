package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	legacycache "metabridge/internal/cache/legacy"
	"metabridge/internal/gateway/config"
	"metabridge/internal/gateway/handler"
	legacyrepo "metabridge/internal/gateway/repository/legacy"
)

type legacyStores struct {
	loader legacyrepo.Loader
	pinger handler.Pinger
	close  func() error
}

func initStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*legacyStores, error) {
	var (
		stores *legacyStores
		err    error
	)
	if cfg.UsesDatabase() {
		stores, err = initSQLStores(ctx, cfg, logger)
	} else {
		stores, err = initInMemoryStores(cfg, logger)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Size > 0 {
		stores.loader = legacycache.NewCachedLoader(stores.loader, legacycache.CacheConfig{
			SnapshotTTL:        cfg.Cache.TTL,
			SnapshotMaxEntries: cfg.Cache.Size,
		})
		logger.Info("snapshot cache enabled",
			zap.Int("size", cfg.Cache.Size),
			zap.Duration("ttl", cfg.Cache.TTL))
	}
	return stores, nil
}

func initSQLStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*legacyStores, error) {
	store, err := legacyrepo.Open(ctx, legacyrepo.SQLConfig{
		Driver:       cfg.Legacy.Driver,
		DSN:          cfg.Legacy.DSN,
		MaxOpenConns: cfg.Legacy.MaxOpenConns,
		QueryTimeout: cfg.Legacy.QueryTimeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("legacy store: sql", zap.String("driver", cfg.Legacy.Driver))
	return &legacyStores{
		loader: legacyrepo.NewLoader(store),
		pinger: store,
		close:  store.Close,
	}, nil
}

func initInMemoryStores(cfg *config.Config, logger *zap.Logger) (*legacyStores, error) {
	store := legacyrepo.NewMemoryStore()
	if path := strings.TrimSpace(cfg.Legacy.FixtureFile); path != "" {
		loaded, err := legacyrepo.LoadFixture(path)
		switch {
		case err == nil:
			store = loaded
			logger.Info("legacy store: fixture", zap.String("path", path))
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("legacy store: fixture missing, serving an empty store", zap.String("path", path))
		default:
			return nil, fmt.Errorf("failed to load legacy fixture: %w", err)
		}
	} else {
		logger.Warn("legacy store: no database or fixture configured, serving an empty store")
	}
	return &legacyStores{
		loader: legacyrepo.NewLoader(store),
		close:  func() error { return nil },
	}, nil
}
