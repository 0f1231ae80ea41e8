package api

import (
	"sync"
)

type ResourceType string

const (
	ResourceUser        ResourceType = "User"
	ResourceAgent       ResourceType = "Agent"
	ResourceTransaction ResourceType = "Transaction"
	ResourceWallet      ResourceType = "Wallet"
)

// Tag labels cached reads for invalidation. An empty Id is the whole resource type.
type Tag struct {
	Type ResourceType
	Id   string
}

func TagOf(rt ResourceType) Tag {
	return Tag{Type: rt}
}

func TagFor(rt ResourceType, id string) Tag {
	return Tag{Type: rt, Id: id}
}

// covers reports whether invalidating t must drop an entry that provided p.
func (t Tag) covers(p Tag) bool {
	if t.Type != p.Type {
		return false
	}
	return t.Id == "" || p.Id == "" || t.Id == p.Id
}

type cacheEntry struct {
	value      any
	tags       []Tag
	generation uint64
}

// queryCache holds read results keyed by request. Entries from another
// session generation are misses.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]cacheEntry)}
}

func (c *queryCache) get(key string, generation uint64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if entry.generation != generation {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *queryCache) put(key string, generation uint64, value any, tags []Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, tags: tags, generation: generation}
}

// invalidate removes every entry covered by one of tags and returns how many went.
func (c *queryCache) invalidate(tags ...Tag) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if coveredByAny(entry.tags, tags) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func coveredByAny(provided, invalidated []Tag) bool {
	for _, inv := range invalidated {
		for _, p := range provided {
			if inv.covers(p) {
				return true
			}
		}
	}
	return false
}
