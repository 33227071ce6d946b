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

package apis

import "reflect"

// Registry attaches markers to members of struct types.
// Methods cannot carry struct tags, so the registry is the only way to mark
// them; for fields it supplements struct tags.
type Registry interface {
	// Mark attaches markers to the named member of t. Re-marking is idempotent.
	Mark(t reflect.Type, kind MemberKind, member string, markers ...Marker) error
	// Marked reports whether the member of t carries marker.
	Marked(t reflect.Type, kind MemberKind, member string, marker Marker) bool
	// Members returns the names of t's members of the given kind that carry
	// at least one marker, sorted by name.
	Members(t reflect.Type, kind MemberKind) []string
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of marked members.
	Count() int
	// Reset clears all marks.
	Reset()
}

// Entry is a single marked member in a Registry snapshot.
type Entry struct {
	// Type is the struct type owning the member.
	Type reflect.Type
	// Kind tells fields and methods apart.
	Kind MemberKind
	// Member is the field or method name.
	Member string
	// Markers lists the attached markers, sorted.
	Markers []Marker
}
