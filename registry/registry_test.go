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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/rfind/apis"
	"dirpx.dev/rfind/registry"
	uref "dirpx.dev/rfind/utils/reflect"
)

type Service struct {
	Name  string
	inner int
}

func (*Service) Start() {}
func (Service) Describe() string { return "svc" }

type Wrapped struct {
	Service
	Extra int
}

func TestMark_IdempotentAndMarked(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	if err := reg.Mark(reflect.TypeOf(&Service{}), apis.MethodMember, "Start", "init"); err != nil {
		t.Fatalf("Mark(&Service.Start): unexpected error: %v", err)
	}
	// idempotent re-mark
	if err := reg.Mark(typ, apis.MethodMember, "Start", "init"); err != nil {
		t.Fatalf("Mark(Service.Start) idempotent: unexpected error: %v", err)
	}

	if !reg.Marked(typ, apis.MethodMember, "Start", "init") {
		t.Fatalf("Marked(Service.Start, init) = false, want true")
	}
	// pointer and value types normalize to the same struct
	if !reg.Marked(reflect.TypeOf(&Service{}), apis.MethodMember, "Start", "init") {
		t.Fatalf("Marked(*Service.Start, init) = false, want true")
	}
	if reg.Marked(typ, apis.MethodMember, "Start", "other") {
		t.Fatalf("Marked(Service.Start, other) = true, want false")
	}
	if reg.Marked(typ, apis.FieldMember, "Start", "init") {
		t.Fatalf("field kind must not see method marks")
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestMark_AccumulatesMarkers(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	_ = reg.Mark(typ, apis.FieldMember, "Name", "json")
	_ = reg.Mark(typ, apis.FieldMember, "Name", "inject", "json", "")

	for _, m := range []apis.Marker{"json", "inject"} {
		if !reg.Marked(typ, apis.FieldMember, "Name", m) {
			t.Fatalf("Marked(Name, %s) = false, want true", m)
		}
	}
	entries := reg.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries len = %d, want 1", len(entries))
	}
	if got, want := entries[0].Markers, []apis.Marker{"inject", "json"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries[0].Markers = %v, want %v", got, want)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestMark_Errors(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	if err := reg.Mark(nil, apis.FieldMember, "Name", "m"); !errors.Is(err, registry.ErrNilType) {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Mark(typ, apis.FieldMember, "", "m"); !errors.Is(err, registry.ErrEmptyName) {
		t.Fatalf("empty name: want ErrEmptyName, got %v", err)
	}
	if err := reg.Mark(typ, apis.FieldMember, "Name"); !errors.Is(err, registry.ErrNoMarkers) {
		t.Fatalf("no markers: want ErrNoMarkers, got %v", err)
	}
	if err := reg.Mark(typ, apis.FieldMember, "Name", ""); !errors.Is(err, registry.ErrNoMarkers) {
		t.Fatalf("empty marker: want ErrNoMarkers, got %v", err)
	}
	if err := reg.Mark(reflect.TypeOf(0), apis.FieldMember, "Name", "m"); !errors.Is(err, uref.ErrReflectTypeNotStruct) {
		t.Fatalf("non-struct: want ErrReflectTypeNotStruct, got %v", err)
	}
	if err := reg.Mark(typ, apis.FieldMember, "Missing", "m"); !errors.Is(err, registry.ErrMemberNotFound) {
		t.Fatalf("missing field: want ErrMemberNotFound, got %v", err)
	}
	// unexported methods are not in the method set
	if err := reg.Mark(typ, apis.MethodMember, "hidden", "m"); !errors.Is(err, registry.ErrMemberNotFound) {
		t.Fatalf("missing method: want ErrMemberNotFound, got %v", err)
	}
	// promoted fields are not declared by the embedding type
	if err := reg.Mark(reflect.TypeOf(Wrapped{}), apis.FieldMember, "Name", "m"); !errors.Is(err, registry.ErrMemberNotFound) {
		t.Fatalf("promoted field: want ErrMemberNotFound, got %v", err)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", reg.Count())
	}
}

func TestMark_UnexportedFieldAndValueReceiver(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	if err := reg.Mark(typ, apis.FieldMember, "inner", "m"); err != nil {
		t.Fatalf("unexported field: unexpected error: %v", err)
	}
	if err := reg.Mark(typ, apis.MethodMember, "Describe", "m"); err != nil {
		t.Fatalf("value receiver method: unexpected error: %v", err)
	}
}

func TestMembers_Sorted(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	_ = reg.Mark(typ, apis.MethodMember, "Start", "m")
	_ = reg.Mark(typ, apis.MethodMember, "Describe", "m")
	_ = reg.Mark(typ, apis.FieldMember, "Name", "m")

	if got, want := reg.Members(typ, apis.MethodMember), []string{"Describe", "Start"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Members(method) = %v, want %v", got, want)
	}
	if got, want := reg.Members(typ, apis.FieldMember), []string{"Name"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Members(field) = %v, want %v", got, want)
	}
	if got := reg.Members(reflect.TypeOf(Wrapped{}), apis.MethodMember); got != nil {
		t.Fatalf("Members(Wrapped) = %v, want nil", got)
	}
	if got := reg.Members(nil, apis.MethodMember); got != nil {
		t.Fatalf("Members(nil) = %v, want nil", got)
	}
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New()
	typ := reflect.TypeOf(Service{})

	_ = reg.Mark(typ, apis.MethodMember, "Start", "m")
	_ = reg.Mark(typ, apis.FieldMember, "Name", "m")

	if n := len(reg.Entries()); n != 2 {
		t.Fatalf("Entries len = %d, want 2", n)
	}
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", reg.Count())
	}
	if reg.Marked(typ, apis.MethodMember, "Start", "m") {
		t.Fatalf("Marked after Reset = true, want false")
	}
	if got := reg.Members(typ, apis.MethodMember); got != nil {
		t.Fatalf("Members after Reset = %v, want nil", got)
	}
}

func TestMarkedNilAndUnknown(t *testing.T) {
	reg := registry.New()

	if reg.Marked(nil, apis.FieldMember, "Name", "m") {
		t.Fatalf("Marked(nil) = true, want false")
	}
	if reg.Marked(reflect.TypeOf(Service{}), apis.FieldMember, "Name", "m") {
		t.Fatalf("Marked(unknown) = true, want false")
	}
}
