package legacy

import (
	"context"
	"errors"
	"testing"
	"time"

	"metabridge/internal/gateway/entity"
	legacyrepo "metabridge/internal/gateway/repository/legacy"
)

type fakeLoader struct {
	calls map[entity.DatasetID]int
	err   error
}

func (f *fakeLoader) Load(_ context.Context, id entity.DatasetID) (*legacyrepo.Snapshot, error) {
	if f.calls == nil {
		f.calls = make(map[entity.DatasetID]int)
	}
	f.calls[id]++
	if f.err != nil {
		return nil, f.err
	}
	return legacyrepo.NewSnapshot(id,
		[]entity.LegacyAgent{{ResourceID: id, Order: 1, Name: "Agent"}},
		nil, nil, nil,
	), nil
}

func TestCachedLoaderReadThrough(t *testing.T) {
	origin := &fakeLoader{}
	loader := NewCachedLoader(origin, CacheConfig{SnapshotTTL: time.Minute, SnapshotMaxEntries: 4})
	ctx := context.Background()

	first, err := loader.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load1 failed: %v", err)
	}
	second, err := loader.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load2 failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached snapshot to be reused")
	}
	if origin.calls[1] != 1 {
		t.Fatalf("expected one origin load, got %d", origin.calls[1])
	}
}

func TestCachedLoaderDoesNotCacheErrors(t *testing.T) {
	origin := &fakeLoader{err: legacyrepo.ErrNotFound}
	loader := NewCachedLoader(origin, DefaultCacheConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := loader.Load(ctx, 9)
		if !errors.Is(err, legacyrepo.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if origin.calls[9] != 2 {
		t.Fatalf("expected every failing load to reach origin, got %d", origin.calls[9])
	}
	if n := loader.snapshots.Len(); n != 0 {
		t.Fatalf("expected empty cache, got %d entries", n)
	}
}

func TestCachedLoaderEvictsLeastRecentlyUsed(t *testing.T) {
	origin := &fakeLoader{}
	loader := NewCachedLoader(origin, CacheConfig{SnapshotTTL: time.Minute, SnapshotMaxEntries: 2})
	ctx := context.Background()

	for _, id := range []entity.DatasetID{1, 2, 1, 3, 1} {
		if _, err := loader.Load(ctx, id); err != nil {
			t.Fatalf("load %d failed: %v", id, err)
		}
	}
	if origin.calls[1] != 1 {
		t.Fatalf("expected dataset 1 to stay cached, got %d loads", origin.calls[1])
	}
	if _, err := loader.Load(ctx, 2); err != nil {
		t.Fatalf("load 2 failed: %v", err)
	}
	if origin.calls[2] != 2 {
		t.Fatalf("expected dataset 2 to be evicted, got %d loads", origin.calls[2])
	}
}

func TestCachedLoaderExpires(t *testing.T) {
	origin := &fakeLoader{}
	loader := NewCachedLoader(origin, CacheConfig{SnapshotTTL: 20 * time.Millisecond, SnapshotMaxEntries: 4})
	ctx := context.Background()

	if _, err := loader.Load(ctx, 1); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := loader.Load(ctx, 1); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if origin.calls[1] != 2 {
		t.Fatalf("expected reload after ttl, got %d loads", origin.calls[1])
	}
}
