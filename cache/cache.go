/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache provides the string-keyed member caches shared by callers
// of the discoverer.
//
// Entries are never evicted or invalidated: struct layouts and method sets
// are fixed for the life of a process, so a cached discovery result stays
// valid until exit. The backing map is created on first use.
package cache

import (
	"slices"
	"sync"
	"sync/atomic"

	"dirpx.dev/rfind/metrics"
)

// New creates an empty cache. name labels the cache in metrics; m may be nil.
func New[M any](name string, m *metrics.Metrics) *Cache[M] {
	return &Cache[M]{name: name, metrics: m}
}

// Cache maps caller-chosen keys to member lists.
// It is safe for concurrent use. Set and Get copy the slice, so callers
// never share backing arrays with the cache.
type Cache[M any] struct {
	name    string
	metrics *metrics.Metrics

	once  sync.Once
	ready atomic.Bool
	m     *sync.Map // key: string, val: []M
}

// Set stores members under key, replacing any previous entry.
func (c *Cache[M]) Set(key string, members []M) {
	c.store().Store(key, cloneNonNil(members))
}

// Get returns the members stored under key, and false when absent.
func (c *Cache[M]) Get(key string) ([]M, bool) {
	v, ok := c.store().Load(key)
	c.metrics.ObserveCacheLookup(c.name, ok)
	if !ok {
		return nil, false
	}
	return cloneNonNil(v.([]M)), true
}

// Len returns the number of stored keys.
func (c *Cache[M]) Len() int {
	n := 0
	c.store().Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Keys returns the stored keys, sorted.
func (c *Cache[M]) Keys() []string {
	var keys []string
	c.store().Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys
}

// Initialized reports whether the backing map has been created.
func (c *Cache[M]) Initialized() bool {
	return c.ready.Load()
}

// Name returns the metrics label of the cache.
func (c *Cache[M]) Name() string {
	return c.name
}

// store returns the backing map, creating it exactly once.
func (c *Cache[M]) store() *sync.Map {
	c.once.Do(func() {
		c.m = &sync.Map{}
		c.ready.Store(true)
	})
	return c.m
}

// cloneNonNil copies s, turning nil into an empty slice so that a stored
// "no members" result is distinguishable from absence.
func cloneNonNil[M any](s []M) []M {
	out := make([]M, len(s))
	copy(out, s)
	return out
}
