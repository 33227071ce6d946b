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

// Package pathfilter gates which types may be scanned, by plain string
// prefix on the fully-qualified type name.
//
// Matching is not segment-aware: prefix "example.com/app/mod" admits
// "example.com/app/models.User" as well as "example.com/app/mod.User".
package pathfilter

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"dirpx.dev/rfind/apis"
	uref "dirpx.dev/rfind/utils/reflect"
)

// ErrInvalidTypeName is returned when a prefix cannot be derived from a
// type because its name has no package separator.
var ErrInvalidTypeName = errors.New("rfind(pathfilter): type name has no package separator")

// New constructs a Filter holding the given prefixes.
func New(prefixes ...string) *Filter {
	f := &Filter{prefixes: make(map[string]struct{})}
	f.AddPrefixes(prefixes...)
	return f
}

// Filter is a set of type-name prefixes. The zero value is not usable;
// construct with New.
type Filter struct {
	mu       sync.RWMutex
	prefixes map[string]struct{}
}

// Ensure Filter implements apis.Filter.
var _ apis.Filter = (*Filter)(nil)

// AddPrefixes adds each non-empty prefix; duplicates collapse.
func (f *Filter) AddPrefixes(prefixes ...string) {
	if len(prefixes) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range prefixes {
		if p != "" {
			f.prefixes[p] = struct{}{}
		}
	}
}

// AddPrefixesFromTypes adds the package part of each type's name, that is
// the name with its final "."-delimited segment stripped. nil types are
// skipped. If any type has no separator, ErrInvalidTypeName is returned
// and nothing is added.
func (f *Filter) AddPrefixesFromTypes(types ...reflect.Type) error {
	prefixes := make([]string, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		p, ok := uref.PackagePrefix(t)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidTypeName, uref.TypeName(t))
		}
		prefixes = append(prefixes, p)
	}
	f.AddPrefixes(prefixes...)
	return nil
}

// IsAllowed reports whether t may be scanned: always when no prefix is
// stored, otherwise when t's name starts with any stored prefix.
func (f *Filter) IsAllowed(t reflect.Type) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.prefixes) == 0 {
		return true
	}
	name := uref.TypeName(t)
	for p := range f.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Prefixes returns a sorted snapshot of the stored prefixes.
func (f *Filter) Prefixes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.prefixes))
	for p := range f.prefixes {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of stored prefixes.
func (f *Filter) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.prefixes)
}
