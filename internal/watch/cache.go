package watch

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of artifact paths remembered.
const DefaultCacheSize = 256

// Cache remembers content hashes of written artifacts.
type Cache struct {
	hashes *lru.Cache[string, [sha256.Size]byte]
}

// NewCache creates a cache holding up to size entries.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[string, [sha256.Size]byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{hashes: c}, nil
}

// Changed reports whether content differs from what was last recorded for key and
// records it.
func (c *Cache) Changed(key string, content []byte) bool {
	sum := sha256.Sum256(content)
	if prev, ok := c.hashes.Get(key); ok && prev == sum {
		return false
	}
	c.hashes.Add(key, sum)
	return true
}

// Forget drops the entry for key.
func (c *Cache) Forget(key string) {
	c.hashes.Remove(key)
}
