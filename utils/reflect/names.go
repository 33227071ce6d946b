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

package reflect

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// typeNameCache memoizes fully-qualified names by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TypeName returns the fully-qualified name of t: "<import path>.<Name>".
//
// Pointers are unwrapped first. Generic instantiation parameters are
// stripped ("pkg.Box[int]" -> "pkg.Box") so that the last "." always
// separates the package from the simple name. Builtin types have no
// package and yield their bare name ("int"); unnamed types yield their
// literal form (t.String()). A nil type yields "".
//
// Distinct types may share a TypeName. Use UniqueName to key per type.
func TypeName(t reflect.Type) string {
	t = Deref(t)
	if t == nil {
		return ""
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}
	name := qualifiedName(t, stripTypeParams)
	typeNameCache.Store(t, name)
	return name
}

// uniqueNames memoizes UniqueName by type.
var uniqueNames sync.Map // key: reflect.Type, val: string

// claims counts the types that took each qualified name. Guarded by claimMu.
var claims = map[string]int{}

var claimMu sync.Mutex

// UniqueName returns a name that identifies t within the process.
//
// It is the fully-qualified name with type arguments kept
// ("pkg.Box[int]"). Types that still collide, such as two function-local
// types declared with the same name, get a "#n" suffix in the order they
// are first seen. Pointers are unwrapped as in TypeName.
func UniqueName(t reflect.Type) string {
	t = Deref(t)
	if t == nil {
		return ""
	}
	if v, ok := uniqueNames.Load(t); ok {
		return v.(string)
	}

	claimMu.Lock()
	defer claimMu.Unlock()
	if v, ok := uniqueNames.Load(t); ok {
		return v.(string)
	}
	name := qualifiedName(t, nil)
	n := claims[name] + 1
	claims[name] = n
	if n > 1 {
		name += "#" + strconv.Itoa(n)
	}
	uniqueNames.Store(t, name)
	return name
}

// PackagePrefix returns the part of TypeName(t) before the final ".",
// and false when the name carries no separator or t is unnamed.
func PackagePrefix(t reflect.Type) (string, bool) {
	if d := Deref(t); d == nil || d.Name() == "" || d.Kind() == reflect.Pointer {
		return "", false
	}
	name := TypeName(t)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// qualifiedName builds "<import path>.<Name>" for t, passing the simple
// name through simple when it is non-nil.
func qualifiedName(t reflect.Type, simple func(string) string) string {
	if t.Name() == "" || t.Kind() == reflect.Pointer {
		return t.String()
	}
	name := t.Name()
	if simple != nil {
		name = simple(name)
	}
	if t.PkgPath() == "" {
		return name
	}
	return t.PkgPath() + "." + name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
