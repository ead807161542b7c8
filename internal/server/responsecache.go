package server

import (
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/snowdex/snowdex/pkg/catalog"
)

// responseCache memoizes encoded query responses. Keys embed the
// snapshot's fetch time, so a catalog refresh strands old entries to
// expire instead of serving pages built from a replaced snapshot.
type responseCache struct {
	entries *gocache.Cache
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{entries: gocache.New(ttl, ttl/2)}
}

// key canonicalizes a query state under one snapshot generation.
func (rc *responseCache) key(fetchedAt time.Time, state catalog.QueryState) string {
	st := state.Normalize()
	return fmt.Sprintf("%d|%s|%s|%d", fetchedAt.UnixNano(), st.SearchTerm, st.LicenseFilter, st.Page)
}

func (rc *responseCache) get(key string) ([]byte, bool) {
	v, ok := rc.entries.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// put encodes v, stores the body under key, and returns it so the
// caller can write the same bytes it cached.
func (rc *responseCache) put(key string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	rc.entries.SetDefault(key, body)
	return body, nil
}
