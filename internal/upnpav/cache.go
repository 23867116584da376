package upnpav

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	freecache_store "github.com/eko/gocache/store/freecache/v4"
	"github.com/golang/snappy"
)

// responseCache memoizes ReadDir/GetMetadata results per server, keyed
// by object ID, grounded on the freecache-backed browse cache: whole
// DirContent payloads are snappy-compressed before insertion to keep
// the fixed-size ring buffer holding more entries than raw JSON would
// allow.
type responseCache struct {
	browse   *cache.Cache[[]byte]
	metadata *cache.Cache[[]byte]
	ttl      time.Duration
}

// newResponseCache builds a cache with the given freecache byte budget
// and entry TTL. sizeBytes is split evenly between the browse and
// metadata namespaces.
func newResponseCache(sizeBytes int, ttl time.Duration) *responseCache {
	half := sizeBytes / 2
	if half < 1<<16 {
		half = 1 << 16
	}
	browseStore := freecache_store.NewFreecache(freecache.NewCache(half))
	metadataStore := freecache_store.NewFreecache(freecache.NewCache(half))
	return &responseCache{
		browse:   cache.New[[]byte](browseStore),
		metadata: cache.New[[]byte](metadataStore),
		ttl:      ttl,
	}
}

func (c *responseCache) getBrowse(server, objectID string) (DirContent, bool) {
	return c.get(c.browse, server+"/"+objectID)
}

func (c *responseCache) putBrowse(server, objectID string, content DirContent) {
	c.put(c.browse, server+"/"+objectID, content)
}

func (c *responseCache) getMetadata(server, objectID string) (DirContent, bool) {
	return c.get(c.metadata, server+"/"+objectID)
}

func (c *responseCache) putMetadata(server, objectID string, content DirContent) {
	c.put(c.metadata, server+"/"+objectID, content)
}

func (c *responseCache) get(store *cache.Cache[[]byte], key string) (DirContent, bool) {
	encoded, err := store.Get(context.Background(), key)
	if err != nil || len(encoded) == 0 {
		return DirContent{}, false
	}
	raw, err := snappy.Decode(nil, encoded)
	if err != nil {
		return DirContent{}, false
	}
	var content DirContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return DirContent{}, false
	}
	return content, true
}

func (c *responseCache) put(store *cache.Cache[[]byte], key string, content DirContent) {
	raw, err := json.Marshal(content)
	if err != nil {
		return
	}
	encoded := snappy.Encode(nil, raw)
	_ = store.Set(context.Background(), key, encoded, gocacheOptions(c.ttl)...)
}

func gocacheOptions(ttl time.Duration) []store.Option {
	if ttl <= 0 {
		return nil
	}
	return []store.Option{store.WithExpiration(ttl)}
}

// invalidateServer drops every cached entry of every server, not only
// the named one's. Called
// when discovery reports a server has gone away and later reappeared,
// since its object IDs are not guaranteed stable across restarts.
func (c *responseCache) invalidateServer(server string) {
	_ = c.browse.Clear(context.Background())
	_ = c.metadata.Clear(context.Background())
	_ = server // per-server selective clear is not exposed by the store; clear both namespaces wholesale
}
