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

package discovery

import (
	"reflect"
	"slices"

	"dirpx.dev/rfind/apis"
	uref "dirpx.dev/rfind/utils/reflect"
)

// FindOption tunes a single search.
type FindOption func(*findOptions)

type findOptions struct {
	ancestors bool
}

// WithAncestors controls whether embedded ancestors are searched after the
// type itself. Ancestors are searched by default.
func WithAncestors(up bool) FindOption {
	return func(o *findOptions) {
		o.ancestors = up
	}
}

// FindFields returns the fields of t, and by default of its ancestors,
// that carry marker. Each field is relaxed for access and carries its path
// from t. No match, a non-struct t, or a filtered t yields an empty slice.
func (d *Discoverer) FindFields(t reflect.Type, marker apis.Marker, opts ...FindOption) []apis.Field {
	return walk(d, fieldScanner(d.in), t, marker, opts)
}

// FindMethods returns the methods of t, and by default of its ancestors,
// that carry marker. Each method carries the embedding path from t to the
// type it was marked on.
func (d *Discoverer) FindMethods(t reflect.Type, marker apis.Marker, opts ...FindOption) []apis.Method {
	return walk(d, methodScanner(d.in), t, marker, opts)
}

// scanner adapts one member kind to the shared walk.
type scanner[M any] struct {
	kind     apis.MemberKind
	declared func(reflect.Type) []M
	has      func(M, apis.Marker) bool
	relax    func(M) M
	// rebase rewrites a member found on an ancestor reached through prefix.
	rebase func(M, []int) M
}

func fieldScanner(in apis.Introspector) scanner[apis.Field] {
	return scanner[apis.Field]{
		kind:     apis.FieldMember,
		declared: in.DeclaredFields,
		has:      in.FieldHasMarker,
		relax:    in.RelaxField,
		rebase: func(f apis.Field, prefix []int) apis.Field {
			f.Path = append(slices.Clone(prefix), f.Path...)
			return f
		},
	}
}

func methodScanner(in apis.Introspector) scanner[apis.Method] {
	return scanner[apis.Method]{
		kind:     apis.MethodMember,
		declared: in.DeclaredMethods,
		has:      in.MethodHasMarker,
		relax:    in.RelaxMethod,
		rebase: func(m apis.Method, prefix []int) apis.Method {
			m.Path = slices.Clone(prefix)
			return m
		},
	}
}

// walk scans t and, when requested, its ancestor chain iteratively.
// Self members come first, then each ancestor's in chain order.
func walk[M any](d *Discoverer, s scanner[M], t reflect.Type, marker apis.Marker, opts []FindOption) []M {
	o := findOptions{ancestors: true}
	for _, opt := range opts {
		opt(&o)
	}

	out := []M{}
	cur, err := uref.Normalize(t)
	if err != nil {
		return out
	}

	var prefix []int
	seen := make(map[reflect.Type]struct{})
	for depth := 0; ; depth++ {
		name := uref.TypeName(cur)
		if depth >= d.cfg.MaxDepth {
			d.log.V(1).Info("ancestor walk truncated", "type", name, "kind", s.kind, "maxDepth", d.cfg.MaxDepth)
			break
		}
		// Go allows a struct to embed a pointer to itself.
		if _, dup := seen[cur]; dup {
			d.log.V(1).Info("ancestor cycle detected", "type", name, "kind", s.kind)
			break
		}
		seen[cur] = struct{}{}

		if !d.filter.IsAllowed(cur) {
			d.metrics.ObserveFiltered(s.kind)
			d.log.V(1).Info("type outside search paths", "type", name, "kind", s.kind, "depth", depth)
			break
		}

		d.metrics.ObserveScan(s.kind)
		d.log.V(2).Info("scanning type", "type", name, "kind", s.kind, "marker", marker, "depth", depth)
		for _, m := range s.declared(cur) {
			if s.has(m, marker) {
				out = append(out, s.rebase(s.relax(m), prefix))
			}
		}

		if !o.ancestors {
			break
		}
		link, ok := d.in.Parent(cur)
		if !ok {
			break
		}
		prefix = append(slices.Clone(prefix), link.Index...)
		cur = uref.Deref(link.Type)
	}
	return out
}
