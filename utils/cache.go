package utils

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recent decode results keyed by content hash, so the same
// bytes given twice in one run are decoded once.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

func NewCache[V any](size int) *Cache[V] {
	c, err := lru.New[string, V](size)
	if err != nil {
		panic(err)
	}
	return &Cache[V]{lru: c}
}

func (c *Cache[V]) Get(data []byte) (V, bool) {
	return c.lru.Get(Md5(data))
}

func (c *Cache[V]) Set(data []byte, v V) {
	c.lru.Add(Md5(data), v)
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
