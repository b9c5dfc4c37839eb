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
	"dirpx.dev/refl/apis"
)

const (
	// DefaultFullPkgPath represents the default for FullPkgPath.
	// Full import paths keep same-named types from different modules apart.
	DefaultFullPkgPath = true

	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8

	// DefaultMallocLimit represents the default for MallocLimit (unlimited).
	DefaultMallocLimit = 0

	// DefaultMaxAlignment represents the default for MaxAlignment.
	DefaultMaxAlignment = 4096

	// DefaultRecoverPanics represents the default for RecoverPanics.
	DefaultRecoverPanics = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxAlignment == 0 || !isPow2(cfg.MaxAlignment) {
		cfg.MaxAlignment = DefaultMaxAlignment
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		FullPkgPath:   DefaultFullPkgPath,
		MaxUnwrap:     DefaultMaxUnwrap,
		MallocLimit:   DefaultMallocLimit,
		MaxAlignment:  DefaultMaxAlignment,
		RecoverPanics: DefaultRecoverPanics,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFullPkgPath sets the FullPkgPath option.
func WithFullPkgPath(full bool) Option {
	return func(c *apis.Config) {
		c.FullPkgPath = full
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMallocLimit sets the MallocLimit option. Zero disables the limit.
func WithMallocLimit(limit uint64) Option {
	return func(c *apis.Config) {
		c.MallocLimit = limit
	}
}

// WithMaxAlignment sets the MaxAlignment option.
// Zero or a non power of two resets to the default.
func WithMaxAlignment(align uint64) Option {
	return func(c *apis.Config) {
		if align == 0 || !isPow2(align) {
			c.MaxAlignment = DefaultMaxAlignment
			return
		}
		c.MaxAlignment = align
	}
}

// WithRecoverPanics sets the RecoverPanics option.
func WithRecoverPanics(enabled bool) Option {
	return func(c *apis.Config) {
		c.RecoverPanics = enabled
	}
}

func isPow2(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}
