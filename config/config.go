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

package config

import (
	"slices"

	"dirpx.dev/rfind/apis"
)

const (
	// DefaultKeySeparator represents the default for KeySeparator.
	DefaultKeySeparator = "_"
	// DefaultMaxDepth represents the default for MaxDepth.
	// Real embedding chains are a handful of levels deep.
	DefaultMaxDepth = 64
	// DefaultRelaxAccess represents the default for RelaxAccess.
	// When true, unexported members are made usable.
	DefaultRelaxAccess = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		KeySeparator: DefaultKeySeparator,
		MaxDepth:     DefaultMaxDepth,
		RelaxAccess:  DefaultRelaxAccess,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithSearchPaths appends type-name prefixes to SearchPaths.
func WithSearchPaths(paths ...string) Option {
	return func(c *apis.Config) {
		c.SearchPaths = append(slices.Clone(c.SearchPaths), paths...)
	}
}

// WithKeySeparator sets the KeySeparator option.
// An empty separator resets to the default.
func WithKeySeparator(sep string) Option {
	return func(c *apis.Config) {
		if sep == "" {
			c.KeySeparator = DefaultKeySeparator
			return
		}
		c.KeySeparator = sep
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithRelaxAccess sets the RelaxAccess option.
func WithRelaxAccess(relax bool) Option {
	return func(c *apis.Config) {
		c.RelaxAccess = relax
	}
}

// sanitize replaces invalid knob values with their defaults.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.KeySeparator == "" {
		cfg.KeySeparator = DefaultKeySeparator
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}
