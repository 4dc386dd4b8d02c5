package ignore

import "sync"

// Cache holds one compiled RuleSet per repository root. Rule sets are
// immutable once published; a rebuild compiles outside the lock and replaces
// the cached reference, so readers never observe a half-built set.
type Cache struct {
	mu   sync.RWMutex
	sets map[string]*RuleSet
}

// NewCache creates an empty rule-set cache.
func NewCache() *Cache {
	return &Cache{sets: make(map[string]*RuleSet)}
}

// For returns the rule set for a repository root, loading and publishing it on
// first use.
func (c *Cache) For(root string) *RuleSet {
	c.mu.RLock()
	rs, ok := c.sets[root]
	c.mu.RUnlock()
	if ok {
		return rs
	}

	rs = Load(root)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.sets[root]; ok {
		return cached
	}
	c.sets[root] = rs
	return rs
}

// Invalidate drops the cached rule set for a root so the next lookup reloads it.
func (c *Cache) Invalidate(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, root)
}
