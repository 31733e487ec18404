package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ContextCache keeps the per-user recent-notes digest used to enrich chat
// prompts. Entries expire on their own and are evicted eagerly whenever a
// note event for the user comes through the bus.
type ContextCache struct {
	cache *cache.Cache
}

func NewContextCache() *ContextCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ContextCache{
		cache: c,
	}
}

func (r *ContextCache) SaveDigest(userId uuid.UUID, digest string) {
	r.cache.Set(userId.String(), digest, cache.DefaultExpiration)
}

func (r *ContextCache) GetDigest(userId uuid.UUID) (string, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(string), true
	}
	return "", false
}

func (r *ContextCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
