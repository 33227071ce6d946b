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

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

// ErrNotAccessible is returned when a member is read or invoked in a way
// that reflection forbids and access was not relaxed.
var ErrNotAccessible = errors.New("rfind(apis): member is not accessible")

// Marker names the marker searched for on members.
// On struct fields it is a struct tag key (`inject:""` is marker "inject");
// on fields and methods alike it may be attached through a Registry.
type Marker string

// String implements fmt.Stringer.
func (m Marker) String() string { return string(m) }

// MemberKind distinguishes fields from methods.
type MemberKind int

const (
	// FieldMember denotes a struct field.
	FieldMember MemberKind = iota
	// MethodMember denotes a method.
	MethodMember
)

// String returns "field", "method" or a diagnostic form for unknown values.
func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case MethodMember:
		return "method"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Field is a struct field discovered on Owner.
type Field struct {
	reflect.StructField

	// Owner is the struct type that declares the field.
	Owner reflect.Type
	// Path is the field index sequence from the scanned type down to the
	// field, crossing the embedded ancestor links.
	Path []int
	// Accessible reports whether access restrictions were relaxed, which
	// allows Value to hand out settable values for unexported fields.
	Accessible bool
}

// Value returns the field within v, which must be a struct (or pointer to
// struct) of the scanned type. Nil embedded pointers along the path yield
// an error.
func (f Field) Value(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("rfind(apis): nil pointer reading field %s", f.Name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("rfind(apis): reading field %s from %s value", f.Name, v.Kind())
	}
	fv, err := v.FieldByIndexErr(f.Path)
	if err != nil {
		return reflect.Value{}, err
	}
	if fv.CanInterface() {
		return fv, nil
	}
	// Unexported, or reached through an unexported embedded field.
	if !f.Accessible {
		return reflect.Value{}, fmt.Errorf("%w: field %s.%s", ErrNotAccessible, f.Owner, f.Name)
	}
	if !fv.CanAddr() {
		// Unaddressable values can only be read through the restricted copy.
		return fv, nil
	}
	return unrestrict(fv), nil
}

// unrestrict drops the read-only flag reflect attaches to values reached
// through unexported fields. Addressable values stay settable; an
// unaddressable pointer is replaced by a fresh pointer to the same target.
func unrestrict(v reflect.Value) reflect.Value {
	switch {
	case v.CanAddr():
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	case v.Kind() == reflect.Pointer:
		return reflect.NewAt(v.Type().Elem(), v.UnsafePointer())
	default:
		return v
	}
}

// Method is a method discovered on Owner.
type Method struct {
	reflect.Method

	// Owner is the struct type the method was marked on.
	Owner reflect.Type
	// Path is the index sequence of embedded fields leading from the
	// scanned type to Owner. It is empty for methods of the scanned type.
	Path []int
	// Accessible reports whether access restrictions were relaxed.
	Accessible bool
}

// Bound returns the method bound to the Owner value reached from v along
// Path. v must be a pointer to the scanned type, or an addressable value
// of it, so that pointer-receiver methods can be bound.
func (m Method) Bound(v reflect.Value) (reflect.Value, error) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return reflect.Value{}, fmt.Errorf("rfind(apis): nil receiver for method %s", m.Name)
	}
	if len(m.Path) > 0 {
		sv := reflect.Indirect(v)
		if sv.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("rfind(apis): binding method %s on %s value", m.Name, sv.Kind())
		}
		fv, err := sv.FieldByIndexErr(m.Path)
		if err != nil {
			return reflect.Value{}, err
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			return reflect.Value{}, fmt.Errorf("rfind(apis): nil embedded receiver for method %s", m.Name)
		}
		if !fv.CanInterface() {
			// Reached through an unexported embedded field.
			if !m.Accessible {
				return reflect.Value{}, fmt.Errorf("%w: method %s.%s", ErrNotAccessible, m.Owner, m.Name)
			}
			fv = unrestrict(fv)
		}
		v = fv
	}
	if v.Kind() != reflect.Pointer {
		if !v.CanAddr() {
			return reflect.Value{}, fmt.Errorf("%w: method %s needs an addressable receiver", ErrNotAccessible, m.Name)
		}
		v = v.Addr()
	}
	bm := v.MethodByName(m.Name)
	if !bm.IsValid() {
		return reflect.Value{}, fmt.Errorf("rfind(apis): method %s not found on %s", m.Name, v.Type())
	}
	return bm, nil
}
