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

// Package fixture declares ancestor types living outside the test package,
// so path filtering can tell levels of one chain apart.
package fixture

// Base is a parent type with one marked and one unmarked field.
type Base struct {
	Y string `m:""`
	Z string
}

// Started records calls to Start.
var Started int

// Start is marked in tests.
func (*Base) Start() { Started++ }
