package legacy

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"metabridge/internal/gateway/entity"
	legacyrepo "metabridge/internal/gateway/repository/legacy"
)

type Loader = legacyrepo.Loader

type CacheConfig struct {
	SnapshotTTL        time.Duration
	SnapshotMaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		SnapshotTTL:        time.Minute,
		SnapshotMaxEntries: 512,
	}
}

// CachedLoader is a read-through cache of dataset snapshots. Snapshots are
// immutable, so cached values are shared between callers. Errors, including
// not-found, are never cached.
type CachedLoader struct {
	origin    Loader
	snapshots *expirable.LRU[entity.DatasetID, *legacyrepo.Snapshot]
}

func NewCachedLoader(origin Loader, cfg CacheConfig) *CachedLoader {
	if cfg.SnapshotTTL <= 0 || cfg.SnapshotMaxEntries <= 0 {
		def := DefaultCacheConfig()
		if cfg.SnapshotTTL <= 0 {
			cfg.SnapshotTTL = def.SnapshotTTL
		}
		if cfg.SnapshotMaxEntries <= 0 {
			cfg.SnapshotMaxEntries = def.SnapshotMaxEntries
		}
	}
	return &CachedLoader{
		origin:    origin,
		snapshots: expirable.NewLRU[entity.DatasetID, *legacyrepo.Snapshot](cfg.SnapshotMaxEntries, nil, cfg.SnapshotTTL),
	}
}

func (c *CachedLoader) Load(ctx context.Context, id entity.DatasetID) (*legacyrepo.Snapshot, error) {
	if snap, ok := c.snapshots.Get(id); ok {
		return snap, nil
	}
	snap, err := c.origin.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.snapshots.Add(id, snap)
	return snap, nil
}
