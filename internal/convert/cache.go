package convert

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache keeps recent markdown keyed by model, instruction and file bytes.
// It lives only as long as the process.
type ResultCache struct {
	entries *lru.Cache[string, string]
}

// NewResultCache returns nil when size is not positive, which disables caching.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: c}, nil
}

// KeyFrom builds a cache key from the request inputs.
func KeyFrom(model, instruction string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(instruction))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns cached markdown. Safe on a nil cache.
func (c *ResultCache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.entries.Get(key)
}

// Add stores markdown. Safe on a nil cache.
func (c *ResultCache) Add(key, markdown string) {
	if c == nil {
		return
	}
	c.entries.Add(key, markdown)
}

// Len reports the number of cached entries.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
