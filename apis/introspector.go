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

// Introspector is the reflection capability the discovery walk runs on.
// Implementations must be safe for concurrent use and free of side effects.
type Introspector interface {
	// DeclaredFields returns the fields declared by t itself, in declaration
	// order, excluding the embedded field that links t to its parent.
	DeclaredFields(t reflect.Type) []Field
	// DeclaredMethods returns the methods declared by t itself.
	DeclaredMethods(t reflect.Type) []Method
	// Parent returns the embedded field linking t to its parent type.
	Parent(t reflect.Type) (reflect.StructField, bool)
	// FieldHasMarker reports whether f carries marker.
	FieldHasMarker(f Field, marker Marker) bool
	// MethodHasMarker reports whether m carries marker.
	MethodHasMarker(m Method, marker Marker) bool
	// RelaxField makes f usable regardless of its visibility.
	RelaxField(f Field) Field
	// RelaxMethod makes m usable regardless of how it is reached.
	RelaxMethod(m Method) Method
}

// Filter gates which types may be scanned.
type Filter interface {
	// AddPrefixes adds type-name prefixes. Empty strings are ignored.
	AddPrefixes(prefixes ...string)
	// AddPrefixesFromTypes adds the package part of each type's name.
	AddPrefixesFromTypes(types ...reflect.Type) error
	// IsAllowed reports whether t may be scanned.
	IsAllowed(t reflect.Type) bool
	// Prefixes returns a sorted snapshot of the stored prefixes.
	Prefixes() []string
	// Len returns the number of stored prefixes.
	Len() int
}
