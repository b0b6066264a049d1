package memory

import (
	"fmt"
	"time"

	"notecraft-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SearchCache memoizes search results per snapshot version. A new version
// never hits entries written for an older one, so nothing needs flushing on
// mutation; stale entries simply expire.
type SearchCache struct {
	cache *cache.Cache
}

func NewSearchCache(ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SearchCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func searchKey(version uint64, query string) string {
	return fmt.Sprintf("%d|%s", version, query)
}

func (c *SearchCache) Get(version uint64, query string) ([]*entity.Page, bool) {
	if x, found := c.cache.Get(searchKey(version, query)); found {
		return x.([]*entity.Page), true
	}
	return nil, false
}

func (c *SearchCache) Save(version uint64, query string, pages []*entity.Page) {
	c.cache.Set(searchKey(version, query), pages, cache.DefaultExpiration)
}

func (c *SearchCache) Len() int {
	return c.cache.ItemCount()
}
