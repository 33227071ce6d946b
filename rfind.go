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

package rfind

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/rfind/apis"
	"dirpx.dev/rfind/config"
	"dirpx.dev/rfind/discovery"
)

// openMu serializes construction of the process-wide discoverer so that
// concurrent first use builds exactly one instance.
var openMu sync.Mutex

// st is the process-wide discoverer, nil until first use.
var st atomic.Pointer[discovery.Discoverer]

// Open returns the process-wide Discoverer, building it from cfg and opts
// if none exists yet. The boolean reports whether this call built it;
// when false, cfg and opts were ignored.
func Open(cfg apis.Config, opts ...discovery.Option) (*discovery.Discoverer, bool) {
	// Fast path: already published.
	if d := st.Load(); d != nil {
		return d, false
	}

	openMu.Lock()
	defer openMu.Unlock()

	// Re-check under lock in case another goroutine published meanwhile.
	if d := st.Load(); d != nil {
		return d, false
	}
	d := discovery.New(cfg, opts...)
	st.Store(d)
	return d, true
}

// Default returns the process-wide Discoverer, building it with the
// default configuration on first use.
func Default() *discovery.Discoverer {
	d, _ := Open(config.DefaultConfig())
	return d
}

// SetDefault replaces the process-wide Discoverer. A nil d is ignored.
// Composition roots that build their own Discoverer can publish it here
// for code that relies on the package-level helpers.
func SetDefault(d *discovery.Discoverer) {
	if d == nil {
		return
	}
	openMu.Lock()
	defer openMu.Unlock()
	st.Store(d)
}

// FindFields runs Default().FindFields.
func FindFields(t reflect.Type, marker apis.Marker, opts ...discovery.FindOption) []apis.Field {
	return Default().FindFields(t, marker, opts...)
}

// FindMethods runs Default().FindMethods.
func FindMethods(t reflect.Type, marker apis.Marker, opts ...discovery.FindOption) []apis.Method {
	return Default().FindMethods(t, marker, opts...)
}

// CachedFields runs Default().CachedFields.
func CachedFields(t reflect.Type, marker apis.Marker) []apis.Field {
	return Default().CachedFields(t, marker)
}

// CachedMethods runs Default().CachedMethods.
func CachedMethods(t reflect.Type, marker apis.Marker) []apis.Method {
	return Default().CachedMethods(t, marker)
}

// AddSearchPaths adds type-name prefixes to the default path filter.
func AddSearchPaths(prefixes ...string) {
	Default().AddSearchPaths(prefixes...)
}

// AddSearchPathsFromTypes adds the package of each type to the default
// path filter.
func AddSearchPathsFromTypes(types ...reflect.Type) error {
	return Default().AddSearchPathsFromTypes(types...)
}

// MarkField attaches markers to a field of t in the default registry.
func MarkField(t reflect.Type, field string, markers ...apis.Marker) error {
	return Default().MarkField(t, field, markers...)
}

// MarkMethod attaches markers to a method of t in the default registry.
func MarkMethod(t reflect.Type, method string, markers ...apis.Marker) error {
	return Default().MarkMethod(t, method, markers...)
}

// CacheKey returns the recommended cache key for (t, marker).
func CacheKey(t reflect.Type, marker apis.Marker) string {
	return Default().CacheKey(t, marker)
}

// SetFieldCache stores fields under key in the default field cache.
func SetFieldCache(key string, fields []apis.Field) {
	Default().SetFieldCache(key, fields)
}

// LookupFieldCache reads key from the default field cache.
func LookupFieldCache(key string) ([]apis.Field, bool) {
	return Default().LookupFieldCache(key)
}

// SetMethodCache stores methods under key in the default method cache.
func SetMethodCache(key string, methods []apis.Method) {
	Default().SetMethodCache(key, methods)
}

// LookupMethodCache reads key from the default method cache.
func LookupMethodCache(key string) ([]apis.Method, bool) {
	return Default().LookupMethodCache(key)
}
