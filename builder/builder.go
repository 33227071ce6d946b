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

package builder

import (
	"dirpx.dev/rfind/apis"
	"dirpx.dev/rfind/introspect"
	"dirpx.dev/rfind/pathfilter"
	"dirpx.dev/rfind/registry"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its marks are copied into the new registry.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New()
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Mark(e.Type, e.Kind, e.Member, e.Markers...)
		}
	}
	return nreg
}

// BuildIntrospector builds and returns a reflect-backed apis.Introspector
// reading marks from reg.
func (b *builder) BuildIntrospector(cfg apis.Config, reg apis.Registry) apis.Introspector {
	return introspect.New(reg, cfg)
}

// BuildFilter builds and returns a path filter seeded with cfg.SearchPaths.
func (b *builder) BuildFilter(cfg apis.Config) apis.Filter {
	return pathfilter.New(cfg.SearchPaths...)
}
