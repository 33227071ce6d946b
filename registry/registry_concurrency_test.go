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
	"reflect"
	"runtime"
	"sync"
	"testing"

	apis "dirpx.dev/rfind/apis"
	"dirpx.dev/rfind/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{ F int }
type T1 struct{ F int }
type T2 struct{ F int }
type T3 struct{ F int }
type T4 struct{ F int }

// TestConcurrentMarkAndMarked verifies that Mark/Marked/Members/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentMarkAndMarked(t *testing.T) {
	reg := registry.New()

	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}),
	}

	// Mark once (sequential) to establish baseline.
	for _, tt := range types {
		if err := reg.Mark(tt, apis.FieldMember, "F", "base"); err != nil {
			t.Fatalf("mark %s: %v", tt, err)
		}
	}

	// Hammer with concurrent lookups and re-marks.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				tt := types[i%len(types)]
				if !reg.Marked(tt, apis.FieldMember, "F", "base") {
					t.Errorf("marked failed for %v", tt)
					return
				}
				_ = reg.Members(tt, apis.FieldMember)
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-mark plus one extra marker per type)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(types)
				_ = reg.Mark(types[j], apis.FieldMember, "F", "base", "extra") // must be safe & idempotent
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(types) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(types))
	}
	for _, e := range reg.Entries() {
		if !reflect.DeepEqual(e.Markers, []apis.Marker{"base", "extra"}) {
			t.Fatalf("entry mismatch for %v: got %v", e.Type, e.Markers)
		}
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New()

	_ = reg.Mark(reflect.TypeOf(T0{}), apis.FieldMember, "F", "m")
	_ = reg.Mark(reflect.TypeOf(T1{}), apis.FieldMember, "F", "m")

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	// sanity
	if snap[0].Member == "" || snap[1].Member == "" {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New()
