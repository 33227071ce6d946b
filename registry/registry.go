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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"dirpx.dev/rfind/apis"
	uref "dirpx.dev/rfind/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("rfind(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty member name is provided.
	ErrEmptyName = errors.New("rfind(registry): empty member name provided")
	// ErrNoMarkers is returned when Mark is called without a non-empty marker.
	ErrNoMarkers = errors.New("rfind(registry): no markers provided")
	// ErrMemberNotFound is returned when the named member is not declared by
	// the type (fields) or not in its pointer method set (methods).
	ErrMemberNotFound = errors.New("rfind(registry): member not found")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// memberKey identifies a single member of a struct type.
type memberKey struct {
	t      reflect.Type
	kind   apis.MemberKind
	member string
}

// ownerKey identifies all members of one kind on a struct type.
type ownerKey struct {
	t    reflect.Type
	kind apis.MemberKind
}

// registry is a Registry implementation backed by sync.Map.
// Stored slices are never mutated after publication; writers replace them.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// marks maps memberKey to its sorted []apis.Marker.
	marks sync.Map
	// members maps ownerKey to the sorted []string of marked member names.
	members sync.Map
	// count tracks the number of marked members.
	count int
}

// Mark attaches markers to the named member of t.
// It is idempotent for markers already attached.
func (r *registry) Mark(t reflect.Type, kind apis.MemberKind, member string, markers ...apis.Marker) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if member == "" {
		return ErrEmptyName
	}
	add := compact(markers)
	if len(add) == 0 {
		return ErrNoMarkers
	}

	st, err := uref.Normalize(t)
	if err != nil {
		return err
	}
	if !declares(st, kind, member) {
		return fmt.Errorf("%w: %s %s.%s", ErrMemberNotFound, kind, st, member)
	}
	key := memberKey{t: st, kind: kind, member: member}

	// Fast read path: nothing new to attach.
	if old, ok := r.marks.Load(key); ok && containsAll(old.([]apis.Marker), add) {
		return nil
	}

	// Write path: guard with a mutex to keep counter and index consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	var cur []apis.Marker
	if old, ok := r.marks.Load(key); ok {
		cur = old.([]apis.Marker)
		if containsAll(cur, add) {
			return nil
		}
	} else {
		r.count++
		owner := ownerKey{t: st, kind: kind}
		var names []string
		if v, found := r.members.Load(owner); found {
			names = v.([]string)
		}
		r.members.Store(owner, insertSorted(names, member))
	}

	r.marks.Store(key, compact(append(slices.Clone(cur), add...)))
	return nil
}

// Marked reports whether the member of t carries marker.
func (r *registry) Marked(t reflect.Type, kind apis.MemberKind, member string, marker apis.Marker) bool {
	st, err := uref.Normalize(t)
	if err != nil {
		return false
	}
	v, ok := r.marks.Load(memberKey{t: st, kind: kind, member: member})
	if !ok {
		return false
	}
	_, found := slices.BinarySearch(v.([]apis.Marker), marker)
	return found
}

// Members returns the marked member names of t, sorted.
func (r *registry) Members(t reflect.Type, kind apis.MemberKind) []string {
	st, err := uref.Normalize(t)
	if err != nil {
		return nil
	}
	if v, ok := r.members.Load(ownerKey{t: st, kind: kind}); ok {
		return slices.Clone(v.([]string))
	}
	return nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.marks.Range(func(key, value any) bool {
		k := key.(memberKey)
		entries = append(entries, apis.Entry{
			Type:    k.t,
			Kind:    k.kind,
			Member:  k.member,
			Markers: slices.Clone(value.([]apis.Marker)),
		})
		return true
	})
	return entries
}

// Count returns the number of marked members.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all marks.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks.Clear()
	r.members.Clear()
	r.count = 0
}

// declares reports whether st declares a field named member directly, or
// has a method named member in its pointer method set.
func declares(st reflect.Type, kind apis.MemberKind, member string) bool {
	switch kind {
	case apis.FieldMember:
		for i := 0; i < st.NumField(); i++ {
			if st.Field(i).Name == member {
				return true
			}
		}
		return false
	case apis.MethodMember:
		_, ok := reflect.PointerTo(st).MethodByName(member)
		return ok
	default:
		return false
	}
}

// compact returns the sorted, deduplicated non-empty markers.
func compact(markers []apis.Marker) []apis.Marker {
	out := make([]apis.Marker, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// containsAll reports whether sorted have includes every marker of want.
func containsAll(have, want []apis.Marker) bool {
	for _, m := range want {
		if _, ok := slices.BinarySearch(have, m); !ok {
			return false
		}
	}
	return true
}

// insertSorted returns a new sorted slice with name added.
func insertSorted(names []string, name string) []string {
	i, found := slices.BinarySearch(names, name)
	if found {
		return names
	}
	return slices.Insert(slices.Clone(names), i, name)
}
