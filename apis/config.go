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

// Config carries read-only discovery knobs.
// It is passed by value; implementations must not mutate SearchPaths.
type Config struct {
	// SearchPaths seeds the path filter with type-name prefixes.
	// An empty list leaves every type eligible for scanning.
	SearchPaths []string `yaml:"searchPaths"`

	// KeySeparator joins the type name and marker name in cache keys.
	KeySeparator string `yaml:"keySeparator"`

	// MaxDepth limits how many types of an ancestor chain are scanned,
	// the scanned type included. Acts as a guard against pathological
	// embedding chains.
	MaxDepth int `yaml:"maxDepth"`

	// RelaxAccess controls whether discovered members are marked
	// accessible, so unexported fields become readable and settable.
	RelaxAccess bool `yaml:"relaxAccess"`
}
