package ao

import "blockbake/internal/world"

// DefaultCacheCapacity is the number of brightness samples a Calculator keeps.
const DefaultCacheCapacity = 50

// Cache is a fixed-capacity brightness cache keyed by block position. When
// full, inserting a new key evicts the oldest inserted one. Not safe for
// concurrent use.
type Cache struct {
	values map[world.BlockPos]uint32
	order  []world.BlockPos // ring of insertion order
	head   int
	hits   uint64
	misses uint64
}

// NewCache returns an empty cache. Non-positive capacities use the default.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		values: make(map[world.BlockPos]uint32, capacity),
		order:  make([]world.BlockPos, 0, capacity),
	}
}

// Get returns the cached value for pos and records a hit or miss.
func (c *Cache) Get(pos world.BlockPos) (uint32, bool) {
	v, ok := c.values[pos]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Contains reports whether pos is cached without touching the counters.
func (c *Cache) Contains(pos world.BlockPos) bool {
	_, ok := c.values[pos]
	return ok
}

// Put stores v for pos. Updating a present key keeps its insertion slot.
func (c *Cache) Put(pos world.BlockPos, v uint32) {
	if _, ok := c.values[pos]; ok {
		c.values[pos] = v
		return
	}
	if len(c.order) < cap(c.order) {
		c.order = append(c.order, pos)
	} else {
		delete(c.values, c.order[c.head])
		c.order[c.head] = pos
		c.head = (c.head + 1) % len(c.order)
	}
	c.values[pos] = v
}

func (c *Cache) Len() int { return len(c.values) }

func (c *Cache) Capacity() int { return cap(c.order) }

// Clear drops every entry. Counters are kept; see ResetStats.
func (c *Cache) Clear() {
	clear(c.values)
	c.order = c.order[:0]
	c.head = 0
}

// Stats returns the hit and miss counts since the last ResetStats.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

func (c *Cache) ResetStats() {
	c.hits, c.misses = 0, 0
}
