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

// Package discovery finds struct fields and methods that carry a marker,
// walking from a type up through its chain of embedded ancestors.
//
// For a type T embedding P1, which embeds P2, a search returns T's own
// matches in declaration order, then P1's, then P2's. Before each level is
// scanned its type is checked against the path filter; a rejected level
// ends the walk, so its ancestors are not inspected either.
//
// Discovery results are not cached implicitly. Callers opt in through the
// field and method caches (SetFieldCache, LookupFieldCache, ...) or the
// CachedFields/CachedMethods helpers.
package discovery

import (
	"reflect"
	"slices"

	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/rfind/apis"
	"dirpx.dev/rfind/builder"
	"dirpx.dev/rfind/cache"
	"dirpx.dev/rfind/config"
	"dirpx.dev/rfind/metrics"
	uref "dirpx.dev/rfind/utils/reflect"
)

// Discoverer locates marker-bearing members of struct types.
// It is safe for concurrent use.
type Discoverer struct {
	cfg     apis.Config
	bld     apis.Builder
	reg     apis.Registry
	in      apis.Introspector
	filter  apis.Filter
	seed    apis.Registry
	log     logr.Logger
	metrics *metrics.Metrics

	fields  *cache.Cache[apis.Field]
	methods *cache.Cache[apis.Method]
	group   singleflight.Group
}

// Option configures a Discoverer during construction.
type Option func(*Discoverer)

// WithBuilder replaces the builder used to construct the registry,
// introspector and filter.
func WithBuilder(b apis.Builder) Option {
	return func(d *Discoverer) {
		if b != nil {
			d.bld = b
		}
	}
}

// WithRegistry shares an existing registry instead of building a new one.
func WithRegistry(reg apis.Registry) Option {
	return func(d *Discoverer) {
		d.reg = reg
	}
}

// WithMarksFrom seeds the Discoverer's own registry with a copy of the
// marks in prev. Later marks on either registry stay independent. It has
// no effect when combined with WithRegistry.
func WithMarksFrom(prev apis.Registry) Option {
	return func(d *Discoverer) {
		d.seed = prev
	}
}

// WithLogger sets the logger. Scans log at V(2), filtered levels and cache
// fills at V(1).
func WithLogger(log logr.Logger) Option {
	return func(d *Discoverer) {
		d.log = log
	}
}

// WithMetrics sets the metrics sink. nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Discoverer) {
		d.metrics = m
	}
}

// New constructs a Discoverer for cfg.
func New(cfg apis.Config, opts ...Option) *Discoverer {
	if cfg.KeySeparator == "" {
		cfg.KeySeparator = config.DefaultKeySeparator
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	cfg.SearchPaths = slices.Clone(cfg.SearchPaths)

	d := &Discoverer{cfg: cfg, bld: builder.New(), log: logr.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	if d.reg == nil {
		d.reg = d.bld.BuildRegistry(cfg, d.seed)
		d.seed = nil
	}
	d.in = d.bld.BuildIntrospector(cfg, d.reg)
	d.filter = d.bld.BuildFilter(cfg)
	d.fields = cache.New[apis.Field]("fields", d.metrics)
	d.methods = cache.New[apis.Method]("methods", d.metrics)
	return d
}

// Config returns the configuration the Discoverer was built with.
func (d *Discoverer) Config() apis.Config {
	cfg := d.cfg
	cfg.SearchPaths = slices.Clone(cfg.SearchPaths)
	return cfg
}

// Registry returns the marker registry.
func (d *Discoverer) Registry() apis.Registry { return d.reg }

// Filter returns the path filter.
func (d *Discoverer) Filter() apis.Filter { return d.filter }

// MarkField attaches markers to a field declared by t.
func (d *Discoverer) MarkField(t reflect.Type, field string, markers ...apis.Marker) error {
	return d.reg.Mark(t, apis.FieldMember, field, markers...)
}

// MarkMethod attaches markers to a method of t.
func (d *Discoverer) MarkMethod(t reflect.Type, method string, markers ...apis.Marker) error {
	return d.reg.Mark(t, apis.MethodMember, method, markers...)
}

// AddSearchPaths restricts scanning to types whose name starts with one of
// the given prefixes. Empty strings are ignored.
func (d *Discoverer) AddSearchPaths(prefixes ...string) {
	d.filter.AddPrefixes(prefixes...)
	d.log.V(1).Info("search paths added", "prefixes", prefixes)
}

// AddSearchPathsFromTypes adds the package of each type as a search path.
// It fails with pathfilter.ErrInvalidTypeName for types without a package.
func (d *Discoverer) AddSearchPathsFromTypes(types ...reflect.Type) error {
	if err := d.filter.AddPrefixesFromTypes(types...); err != nil {
		return err
	}
	d.log.V(1).Info("search paths added from types", "count", len(types))
	return nil
}

// CacheKey returns the recommended cache key for (t, marker). Distinct
// types never share a key, including generic instantiations and
// function-local types of the same name.
func (d *Discoverer) CacheKey(t reflect.Type, marker apis.Marker) string {
	return uref.UniqueName(t) + d.cfg.KeySeparator + string(marker)
}

// CacheInfo describes the state of one discovery cache.
type CacheInfo struct {
	Name        string
	Initialized bool
	Len         int
	Keys        []string
}

// Caches reports the field and method caches, in that order. Inspecting a
// cache does not create its backing map.
func (d *Discoverer) Caches() []CacheInfo {
	return []CacheInfo{cacheInfo(d.fields), cacheInfo(d.methods)}
}

func cacheInfo[M any](c *cache.Cache[M]) CacheInfo {
	info := CacheInfo{Name: c.Name(), Initialized: c.Initialized()}
	if info.Initialized {
		info.Len = c.Len()
		info.Keys = c.Keys()
	}
	return info
}

// SetFieldCache stores fields under key.
func (d *Discoverer) SetFieldCache(key string, fields []apis.Field) {
	d.fields.Set(key, fields)
}

// LookupFieldCache returns the fields stored under key, and false when absent.
func (d *Discoverer) LookupFieldCache(key string) ([]apis.Field, bool) {
	return d.fields.Get(key)
}

// SetMethodCache stores methods under key.
func (d *Discoverer) SetMethodCache(key string, methods []apis.Method) {
	d.methods.Set(key, methods)
}

// LookupMethodCache returns the methods stored under key, and false when absent.
func (d *Discoverer) LookupMethodCache(key string) ([]apis.Method, bool) {
	return d.methods.Get(key)
}

// CachedFields returns FindFields(t, marker) through the field cache under
// CacheKey(t, marker). Concurrent misses for one key run a single scan.
func (d *Discoverer) CachedFields(t reflect.Type, marker apis.Marker) []apis.Field {
	return cached(d, d.fields, "field", t, marker, func() []apis.Field {
		return d.FindFields(t, marker)
	})
}

// CachedMethods returns FindMethods(t, marker) through the method cache
// under CacheKey(t, marker). Concurrent misses for one key run a single scan.
func (d *Discoverer) CachedMethods(t reflect.Type, marker apis.Marker) []apis.Method {
	return cached(d, d.methods, "method", t, marker, func() []apis.Method {
		return d.FindMethods(t, marker)
	})
}

// cached serves key from c, filling it with find on a miss.
func cached[M any](d *Discoverer, c *cache.Cache[M], kind string, t reflect.Type, marker apis.Marker, find func() []M) []M {
	key := d.CacheKey(t, marker)
	if ms, ok := c.Get(key); ok {
		return ms
	}
	v, _, _ := d.group.Do(kind+":"+key, func() (any, error) {
		ms := find()
		c.Set(key, ms)
		d.log.V(1).Info("discovery cache filled", "key", key, "kind", kind, "members", len(ms))
		return ms, nil
	})
	return slices.Clone(v.([]M))
}
