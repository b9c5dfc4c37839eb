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

package builder

import (
	"dirpx.dev/refl/alloc"
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/registry"
	"dirpx.dev/refl/resolver"
	"dirpx.dev/refl/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildNames builds an empty name registry.
func (b *builder) BuildNames(_ apis.Config) apis.NameRegistry {
	return registry.NewNames()
}

// BuildTypes builds a type registry holding only the global pseudo-type.
func (b *builder) BuildTypes(_ apis.Config) apis.TypeRegistry {
	return registry.NewTypes()
}

// BuildAllocator builds the default Go-heap allocator honouring the
// configured limits.
func (b *builder) BuildAllocator(cfg apis.Config) apis.Allocator {
	return alloc.New(cfg)
}

// BuildResolver builds the type name resolver: explicit TypeNamer first,
// then names bound in types, then the reflect-derived canonical name.
func (b *builder) BuildResolver(_ apis.Config, types apis.TypeRegistry) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(types),
		strategy.NewReflectStrategy(),
	)
}
