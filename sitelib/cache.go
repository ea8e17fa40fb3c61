package sitelib

// genCache holds a value derived from inputs identified by a generation key.
// A read with any other key misses, so a cache can never serve a value
// computed from inputs that have since changed.
type genCache[K comparable, T any] struct {
	key   K
	valid bool
	v     T
}

func (c *genCache[K, T]) get(key K) (T, bool) {
	if c.valid && c.key == key {
		return c.v, true
	}
	var zero T
	return zero, false
}

func (c *genCache[K, T]) set(key K, v T) {
	c.key = key
	c.v = v
	c.valid = true
}

func (c *genCache[K, T]) reset() {
	var zero genCache[K, T]
	*c = zero
}
