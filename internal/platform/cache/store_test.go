package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_ColdKeyLoadsOnce(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "round-3", nil
	}

	const readers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "matches:round:3", loader)
			if err != nil {
				t.Errorf("load failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "round-3" {
				t.Errorf("unexpected loaded value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_WarmKeySkipsLoader(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "matches:all", loader); err != nil {
			t.Fatalf("GetOrLoad %d: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiredEntryReloads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatal("expected fresh entry to be served")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatal("expected expired entry to be dropped")
	}
}

func TestStore_InvalidationDuringLoadKeepsKeyCold(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	// The write's invalidation lands while the load is still running:
	// the loaded value predates the write and must not be stored.
	v, err := store.GetOrLoad(ctx, "leaderboard:lg-1:0", func(ctx context.Context) (any, error) {
		store.DeletePrefix(ctx, "leaderboard:lg-1:")
		return "pre-write rows", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if got, _ := v.(string); got != "pre-write rows" {
		t.Fatalf("the caller still gets the loaded value, got %v", v)
	}

	if _, ok := store.Get(ctx, "leaderboard:lg-1:0"); ok {
		t.Fatal("value read before the invalidation must not survive it")
	}
}

func TestStore_LoadAfterInvalidationIsStored(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "leaderboard:lg-1:0", "old")
	store.DeletePrefix(ctx, "leaderboard:lg-1:")

	if _, err := store.GetOrLoad(ctx, "leaderboard:lg-1:0", func(context.Context) (any, error) {
		return "fresh", nil
	}); err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}

	v, ok := store.Get(ctx, "leaderboard:lg-1:0")
	if !ok || v != "fresh" {
		t.Fatalf("a load started after the invalidation must be cached, got %v %v", v, ok)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "bets:user:u-1:", "a")
	store.Set(ctx, "bets:user:u-1:lg-1", "b")
	store.Set(ctx, "matches:round:1", "c")

	store.DeletePrefix(ctx, "bets:user:u-1")

	if _, ok := store.Get(ctx, "bets:user:u-1:lg-1"); ok {
		t.Fatal("expected prefixed entry to be invalidated")
	}
	if _, ok := store.Get(ctx, "matches:round:1"); !ok {
		t.Fatal("expected unrelated entry to survive")
	}
}
