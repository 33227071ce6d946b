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

// Package introspect implements apis.Introspector on top of package reflect.
//
// Go has no class inheritance; the parent of a struct type is the type of
// its first embedded struct (or pointer-to-struct) field. Field markers
// are struct tag keys or registry marks; method markers come from the
// registry only, since methods cannot carry tags.
package introspect

import (
	"reflect"
	"slices"
	"sync"

	"dirpx.dev/rfind/apis"
	uref "dirpx.dev/rfind/utils/reflect"
)

// New creates an apis.Introspector reading marks from reg.
// A nil reg disables registry marks; struct tags still apply.
func New(reg apis.Registry, cfg apis.Config) apis.Introspector {
	return &reflectIntrospector{reg: reg, relax: cfg.RelaxAccess}
}

// reflectIntrospector answers structural questions about struct types.
type reflectIntrospector struct {
	reg   apis.Registry
	relax bool
}

// Ensure reflectIntrospector implements apis.Introspector.
var _ apis.Introspector = (*reflectIntrospector)(nil)

// layout is the memoized field layout of a struct type.
type layout struct {
	fields []apis.Field
	parent int // index of the parent link, or -1
}

// layoutCache caches layouts by struct type. Struct layouts never change
// during the life of a process.
var layoutCache sync.Map // key: reflect.Type, val: *layout

// DeclaredFields returns t's own fields in declaration order, without the
// parent link. Non-struct types have no fields.
func (*reflectIntrospector) DeclaredFields(t reflect.Type) []apis.Field {
	l := layoutOf(t)
	if l == nil {
		return nil
	}
	return slices.Clone(l.fields)
}

// DeclaredMethods returns the registry-marked methods of t in method set
// order.
func (r *reflectIntrospector) DeclaredMethods(t reflect.Type) []apis.Method {
	st, err := uref.Normalize(t)
	if err != nil || r.reg == nil {
		return nil
	}
	names := r.reg.Members(st, apis.MethodMember)
	if len(names) == 0 {
		return nil
	}

	pt := reflect.PointerTo(st)
	out := make([]apis.Method, 0, len(names))
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if _, ok := slices.BinarySearch(names, m.Name); ok {
			out = append(out, apis.Method{Method: m, Owner: st})
		}
	}
	return out
}

// Parent returns the first embedded struct or pointer-to-struct field of t.
func (*reflectIntrospector) Parent(t reflect.Type) (reflect.StructField, bool) {
	st, err := uref.Normalize(t)
	if err != nil {
		return reflect.StructField{}, false
	}
	l := layoutOf(st)
	if l.parent < 0 {
		return reflect.StructField{}, false
	}
	return st.Field(l.parent), true
}

// FieldHasMarker reports whether f has a struct tag keyed by marker or a
// registry mark.
func (r *reflectIntrospector) FieldHasMarker(f apis.Field, marker apis.Marker) bool {
	if marker == "" {
		return false
	}
	if _, ok := f.Tag.Lookup(string(marker)); ok {
		return true
	}
	return r.reg != nil && r.reg.Marked(f.Owner, apis.FieldMember, f.Name, marker)
}

// MethodHasMarker reports whether m has a registry mark.
func (r *reflectIntrospector) MethodHasMarker(m apis.Method, marker apis.Marker) bool {
	if marker == "" || r.reg == nil {
		return false
	}
	return r.reg.Marked(m.Owner, apis.MethodMember, m.Name, marker)
}

// RelaxField marks f accessible unless relaxation is disabled.
func (r *reflectIntrospector) RelaxField(f apis.Field) apis.Field {
	if r.relax {
		f.Accessible = true
	}
	return f
}

// RelaxMethod marks m accessible unless relaxation is disabled.
func (r *reflectIntrospector) RelaxMethod(m apis.Method) apis.Method {
	if r.relax {
		m.Accessible = true
	}
	return m
}

// layoutOf resolves and memoizes the layout of t's struct type.
func layoutOf(t reflect.Type) *layout {
	st, err := uref.Normalize(t)
	if err != nil {
		return nil
	}
	if v, ok := layoutCache.Load(st); ok {
		return v.(*layout)
	}

	l := &layout{parent: -1}
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if l.parent < 0 && sf.Anonymous && uref.Deref(sf.Type).Kind() == reflect.Struct {
			l.parent = i
			continue
		}
		l.fields = append(l.fields, apis.Field{StructField: sf, Owner: st, Path: []int{i}})
	}

	v, _ := layoutCache.LoadOrStore(st, l)
	return v.(*layout)
}
