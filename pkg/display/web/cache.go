package web

// cacheEntry is an encoded frame or patch, known by its hash.
type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a ring of the last encoded frames or patches. The clients
// mirror it, so that a repeated frame is sent as its index only.
type cache struct {
	entries []cacheEntry
	idx     int
}

func newCache(size int) *cache {
	return &cache{entries: make([]cacheEntry, size)}
}

// index returns the index of the entry with hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.data != nil && e.hash == hash {
			return i
		}
	}
	return -1
}

// add stores data, evicting the oldest entry, and returns its index.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}

// sync returns the whole cache, as a sequence of length (uint16),
// index (uint16) and data.
func (c *cache) sync() []byte {
	var data []byte
	for i, e := range c.entries {
		if e.data == nil {
			continue
		}
		data = append(data, byte(len(e.data)), byte(len(e.data)>>8), byte(i), byte(i>>8))
		data = append(data, e.data...)
	}
	return data
}
