// Package cache wraps an LRU of decoded object headers by file address,
// so a name repeatedly looked up across Group.object calls is parsed once.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mwhittaker/hdc5/internal/object"
)

// HeaderCache is a bounded address → *object.Header cache. It never issues
// I/O itself; callers populate it after a successful object.Read.
type HeaderCache struct {
	lru *lru.Cache[uint64, *object.Header]
}

// New builds a HeaderCache holding at most size entries. size < 1 is
// treated as 1: the root object header is always worth keeping.
func New(size int) *HeaderCache {
	if size < 1 {
		size = 1
	}
	c, _ := lru.New[uint64, *object.Header](size)
	return &HeaderCache{lru: c}
}

// Get returns the cached header at address, if present.
func (c *HeaderCache) Get(address uint64) (*object.Header, bool) {
	return c.lru.Get(address)
}

// Put stores hdr under address, evicting the least recently used entry if
// the cache is full.
func (c *HeaderCache) Put(address uint64, hdr *object.Header) {
	c.lru.Add(address, hdr)
}
