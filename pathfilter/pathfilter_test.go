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

package pathfilter_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfind/pathfilter"
)

type Local struct{}
type Box[T any] struct{ V T }

const pkg = "dirpx.dev/rfind/pathfilter_test"

func TestEmptyFilter_AllowsEverything(t *testing.T) {
	f := pathfilter.New()
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.IsAllowed(reflect.TypeOf(Local{})))
	assert.True(t, f.IsAllowed(reflect.TypeOf(0)))
	assert.True(t, f.IsAllowed(reflect.TypeOf(struct{}{})))
}

func TestAddPrefixes_SetSemantics(t *testing.T) {
	f := pathfilter.New("b", "a")
	f.AddPrefixes("a", "", "c")
	f.AddPrefixes()

	assert.Equal(t, []string{"a", "b", "c"}, f.Prefixes())
	assert.Equal(t, 3, f.Len())
}

func TestIsAllowed_PlainPrefix(t *testing.T) {
	f := pathfilter.New("dirpx.dev/rfind/pathfilter")

	// Not segment-aware: the _test package shares the prefix.
	assert.True(t, f.IsAllowed(reflect.TypeOf(Local{})))
	assert.True(t, f.IsAllowed(reflect.TypeOf(&Local{})))

	other := pathfilter.New("example.com/app")
	assert.False(t, other.IsAllowed(reflect.TypeOf(Local{})))
	assert.False(t, other.IsAllowed(reflect.TypeOf(0)))
}

func TestIsAllowed_AnyPrefixMatches(t *testing.T) {
	f := pathfilter.New("zzz", pkg)
	assert.True(t, f.IsAllowed(reflect.TypeOf(Local{})))
}

func TestAddPrefixesFromTypes(t *testing.T) {
	f := pathfilter.New()
	require.NoError(t, f.AddPrefixesFromTypes(reflect.TypeOf(Local{}), nil, reflect.TypeOf(Box[Local]{})))

	assert.Equal(t, []string{pkg}, f.Prefixes())
	assert.True(t, f.IsAllowed(reflect.TypeOf(Box[int]{})))
}

func TestAddPrefixesFromTypes_InvalidTypeName(t *testing.T) {
	f := pathfilter.New()

	err := f.AddPrefixesFromTypes(reflect.TypeOf(Local{}), reflect.TypeOf(0))
	require.ErrorIs(t, err, pathfilter.ErrInvalidTypeName)
	assert.Contains(t, err.Error(), `"int"`)
	// nothing is added on failure
	assert.Equal(t, 0, f.Len())

	require.ErrorIs(t, f.AddPrefixesFromTypes(reflect.TypeOf(struct{ X int }{})), pathfilter.ErrInvalidTypeName)
}

// TestConcurrentAddAndCheck verifies the filter is race-free when setup
// overlaps with scanning.
func TestConcurrentAddAndCheck(t *testing.T) {
	f := pathfilter.New(pkg)
	typ := reflect.TypeOf(Local{})

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers * 2)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if !f.IsAllowed(typ) {
					t.Errorf("IsAllowed(%v) = false, want true", typ)
					return
				}
				_ = f.Prefixes()
			}
		}()
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				f.AddPrefixes("p" + string(rune('a'+(i+id)%26)))
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, f.Len(), 27)
}
