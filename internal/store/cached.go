package store

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/portero/internal/cache"
	"github.com/dropDatabas3/portero/internal/store/core"
)

// CachedRepository decora un core.Repository con un cache read-through
// sobre los probes de whitelist, que son el hot path de cada login.
//
// El cache es solo una optimización de lecturas: los inserts van siempre
// directo al repo (la unicidad vive en el storage) y cada insert de
// whitelist invalida su key para que un alta reciente se vea enseguida
// en este proceso. Singleflight colapsa misses concurrentes por key.
type CachedRepository struct {
	core.Repository

	cache cache.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCached(repo core.Repository, c cache.Cache, ttl time.Duration) *CachedRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedRepository{Repository: repo, cache: c, ttl: ttl}
}

func whitelistKey(accountName, provider string) string {
	return "wl:" + accountName + "|" + provider
}

func (r *CachedRepository) WhitelistExists(ctx context.Context, accountName, provider string) (bool, error) {
	k := whitelistKey(accountName, provider)
	if b, ok := r.cache.Get(k); ok && len(b) == 1 {
		return b[0] == '1', nil
	}

	v, err, _ := r.sf.Do(k, func() (any, error) {
		exists, err := r.Repository.WhitelistExists(ctx, accountName, provider)
		if err != nil {
			return false, err
		}
		val := []byte("0")
		if exists {
			val = []byte("1")
		}
		r.cache.Set(k, val, r.ttl)
		return exists, nil
	})
	if err != nil {
		// Un StoreError nunca se cachea ni se degrada a "not found".
		return false, err
	}
	return v.(bool), nil
}

func (r *CachedRepository) InsertWhitelistEntry(ctx context.Context, e *core.WhitelistEntry) error {
	if err := r.Repository.InsertWhitelistEntry(ctx, e); err != nil {
		return err
	}
	r.cache.Delete(whitelistKey(e.AccountName, e.Provider))
	return nil
}
