package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	cachemem "github.com/dropDatabas3/portero/internal/cache/memory"
	"github.com/dropDatabas3/portero/internal/store/core"
	storemem "github.com/dropDatabas3/portero/internal/store/memory"
)

// countingRepo cuenta los probes que llegan al repo real.
type countingRepo struct {
	core.Repository
	probes atomic.Int64
	fail   atomic.Bool
}

func (r *countingRepo) WhitelistExists(ctx context.Context, accountName, provider string) (bool, error) {
	r.probes.Add(1)
	if r.fail.Load() {
		return false, errors.New("backend down")
	}
	return r.Repository.WhitelistExists(ctx, accountName, provider)
}

func newCachedFixture(t *testing.T) (*CachedRepository, *countingRepo) {
	t.Helper()
	inner := &countingRepo{Repository: storemem.New()}
	return NewCached(inner, cachemem.New(time.Minute), time.Minute), inner
}

func TestCachedWhitelistReadThrough(t *testing.T) {
	ctx := context.Background()
	cached, inner := newCachedFixture(t)

	if err := cached.InsertWhitelistEntry(ctx, &core.WhitelistEntry{
		AccountName: "alice@example.com", Provider: "google",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	for i := 0; i < 5; i++ {
		ok, err := cached.WhitelistExists(ctx, "alice@example.com", "google")
		if err != nil || !ok {
			t.Fatalf("probe %d: ok=%v err=%v", i, ok, err)
		}
	}
	if got := inner.probes.Load(); got != 1 {
		t.Fatalf("expected 1 backend probe, got %d", got)
	}
}

func TestCachedInsertInvalidatesNegativeEntry(t *testing.T) {
	ctx := context.Background()
	cached, _ := newCachedFixture(t)

	// cachear el miss
	ok, err := cached.WhitelistExists(ctx, "bob@example.com", "github")
	if err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	if err := cached.InsertWhitelistEntry(ctx, &core.WhitelistEntry{
		AccountName: "bob@example.com", Provider: "github",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// el alta debe verse enseguida, sin esperar el TTL
	ok, err = cached.WhitelistExists(ctx, "bob@example.com", "github")
	if err != nil || !ok {
		t.Fatalf("expected hit after insert, ok=%v err=%v", ok, err)
	}
}

func TestCachedStoreErrorNotCached(t *testing.T) {
	ctx := context.Background()
	cached, inner := newCachedFixture(t)

	inner.fail.Store(true)
	if _, err := cached.WhitelistExists(ctx, "alice@example.com", "google"); err == nil {
		t.Fatal("expected backend error to surface")
	}

	// al recuperarse el backend, el próximo probe vuelve a consultarlo
	inner.fail.Store(false)
	ok, err := cached.WhitelistExists(ctx, "alice@example.com", "google")
	if err != nil {
		t.Fatalf("probe after recovery: %v", err)
	}
	if ok {
		t.Fatal("nothing was inserted, expected miss")
	}
	if got := inner.probes.Load(); got != 2 {
		t.Fatalf("expected the error to bypass the cache, probes=%d", got)
	}
}
