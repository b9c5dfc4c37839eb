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
	"sync"

	"dirpx.dev/refl/apis"
	uref "dirpx.dev/refl/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives names via
// reflection using utils/reflect.Canonical and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes a stable
// "pkg.Type" spelling for any Go type.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t           reflect.Type
	fullPkgPath bool
	maxUnwrap   int16
}

// typeNameCache caches resolved type names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolveType computes the canonical name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType resolves the canonical name for t with memoization.
func byType(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{
		t:           t,
		fullPkgPath: cfg.FullPkgPath,
		maxUnwrap:   int16(cfg.MaxUnwrap),
	}
	if v, ok := typeNameCache.Load(key); ok {
		return v.(string)
	}
	name, err := uref.Canonical(t, cfg)
	if err != nil {
		name = ""
	}
	typeNameCache.Store(key, name)
	return name
}
