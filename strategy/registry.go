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

package strategy

import (
	"reflect"

	"dirpx.dev/refl/apis"
)

// NewRegistryStrategy creates an apis.Strategy that consults the Go type
// bindings of an apis.TypeRegistry.
func NewRegistryStrategy(reg apis.TypeRegistry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy returns the name a type was explicitly bound under.
type registryStrategy struct {
	reg apis.TypeRegistry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolveType looks up t in the registry.
func (s *registryStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.reg == nil {
		return "", false
	}
	id, ok := s.reg.Bound(t)
	if !ok {
		return "", false
	}
	name := s.reg.Resolve(id)
	return name, name != ""
}
