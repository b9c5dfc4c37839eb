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

// Package resolver turns a Go type into the registry name a Manager interns
// for it, by asking a fixed list of naming strategies in turn.
package resolver

import (
	"reflect"

	"dirpx.dev/refl/apis"
)

// New returns a Resolver over strats. The first strategy that claims a type
// names it; nil entries are dropped. The list is copied, so later changes to
// the caller's slice do not affect the resolver.
func New(strats ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strats))
	for _, s := range strats {
		if s != nil {
			out = append(out, s)
		}
	}
	return firstClaim(out)
}

// firstClaim asks each strategy in order.
type firstClaim []apis.Strategy

// ResolveType returns the registry name of t, or "" when no strategy claims
// it. Manager.TypeIDOf interns whatever comes back.
func (r firstClaim) ResolveType(t reflect.Type, cfg apis.Config) string {
	for _, s := range r {
		if name, ok := s.TryResolveType(t, cfg); ok {
			return name
		}
	}
	return ""
}
