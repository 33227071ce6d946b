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
	"errors"
	"reflect"
)

// MaxPointerUnwrap bounds how many pointer levels Normalize strips.
const MaxPointerUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotStruct indicates that the provided type (after
	// unwrapping pointers) is not a struct.
	ErrReflectTypeNotStruct = errors.New("reflect: type is not a struct")
)

// Normalize unwraps pointers and returns the struct type underneath,
// or an error if none is found.
//
// Unwrapping policy:
//   - ptr    -> Elem(), at most MaxPointerUnwrap times
//   - struct -> returned as is (named or anonymous)
//   - other  -> ErrReflectTypeNotStruct
func Normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; t.Kind() == reflect.Pointer && i < MaxPointerUnwrap; i++ {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrReflectTypeNotStruct
	}
	return t, nil
}

// Deref strips up to MaxPointerUnwrap pointer levels from t. Nil stays nil.
// A self-referential pointer type such as "type P *P" comes back as a
// pointer; callers treat it as unnamed.
func Deref(t reflect.Type) reflect.Type {
	for i := 0; t != nil && t.Kind() == reflect.Pointer && i < MaxPointerUnwrap; i++ {
		t = t.Elem()
	}
	return t
}
