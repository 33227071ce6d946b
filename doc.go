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

// Package rfind discovers struct fields and methods that carry a marker.
//
// A marker is a name. On a struct field it is a struct tag key, so
// `inject:""` carries marker "inject". Fields and methods alike can also be
// marked through a registry, which is the only way to mark methods since
// Go attaches no tags to them:
//
//	rfind.MarkMethod(reflect.TypeOf(Service{}), "Start", "lifecycle.start")
//
// # Ancestors
//
// Go has no inheritance. rfind treats the first embedded struct (or
// pointer to struct) of a type as its parent, so
//
//	type Base struct {
//	    Y string `m:""`
//	    Z string
//	}
//
//	type Derived struct {
//	    Base
//	    X string `m:""`
//	}
//
// gives FindFields(Derived, "m") = [X, Y]: the type's own matches first,
// in declaration order, then each ancestor's. WithAncestors(false) limits
// the search to the type itself. Every returned member carries the
// embedding path from the searched type, so Field.Value and Method.Bound
// work directly on a value of that type, including unexported fields once
// access was relaxed.
//
// # Search paths
//
// AddSearchPaths restricts scanning to types whose fully-qualified name
// ("example.com/app/models.User") starts with a registered prefix. The
// test is a plain string prefix, so "example.com/app/mod" also admits
// "example.com/app/models". The check runs at every level of the walk; a
// level outside the search paths ends it. With no prefixes registered
// every type is scanned.
//
// # Caching
//
// FindFields and FindMethods always scan. The field and method caches are
// explicit: callers store and read results under keys of their choosing,
// with CacheKey(t, marker) as the recommended key, or use CachedFields and
// CachedMethods to do both. Cache entries live for the life of the process.
//
// # Process-wide instance
//
// The package-level helpers delegate to Default(), a Discoverer built on
// first use. Concurrent first use builds exactly one instance. Applications
// that wire their own discovery.Discoverer can publish it with SetDefault,
// or build it with Open before anything else touches the package.
package rfind
