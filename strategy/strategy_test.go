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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/registry"
	"dirpx.dev/refl/strategy"
)

// Local test types.
type A struct{}
type G[T any] struct{}

type named struct{}

func (named) ReflTypeName() string { return "custom.Name" }

type ptrNamed struct{}

func (*ptrNamed) ReflTypeName() string { return "custom.PtrName" }

// Ensure the local types actually satisfy apis.TypeNamer (compile-time).
var (
	_ apis.TypeNamer = named{}
	_ apis.TypeNamer = (*ptrNamed)(nil)
)

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		FullPkgPath: false,
		MaxUnwrap:   8,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNamerStrategy_TryResolveType(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := cfg()

	got, ok := s.TryResolveType(reflect.TypeOf(named{}), conf)
	require.True(t, ok)
	assert.Equal(t, "custom.Name", got)

	got, ok = s.TryResolveType(reflect.TypeOf(ptrNamed{}), conf)
	require.True(t, ok, "value type whose pointer implements TypeNamer")
	assert.Equal(t, "custom.PtrName", got)

	got, ok = s.TryResolveType(reflect.TypeOf(&ptrNamed{}), conf)
	require.True(t, ok, "pointer type implementing TypeNamer")
	assert.Equal(t, "custom.PtrName", got)

	got, ok = s.TryResolveType(reflect.TypeOf(A{}), conf)
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok = s.TryResolveType(nil, conf)
	assert.False(t, ok)
}

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	reg := registry.NewTypes()
	id := reg.Intern("domain.A")
	require.NoError(t, reg.Bind(reflect.TypeOf(A{}), id))

	s := strategy.NewRegistryStrategy(reg)

	got, ok := s.TryResolveType(reflect.TypeOf(A{}), cfg())
	require.True(t, ok)
	assert.Equal(t, "domain.A", got)

	// Bindings are exact: *A is a different type.
	got, ok = s.TryResolveType(reflect.TypeOf(&A{}), cfg())
	assert.False(t, ok)
	assert.Empty(t, got)

	// Nil registry never handles.
	_, ok = strategy.NewRegistryStrategy(nil).TryResolveType(reflect.TypeOf(A{}), cfg())
	assert.False(t, ok)
}

func TestReflectStrategy_ByType(t *testing.T) {
	s := strategy.NewReflectStrategy()

	cases := []struct {
		name string
		typ  reflect.Type
		cfg  apis.Config
		want string
	}{
		{"short path", reflect.TypeOf(A{}), cfg(), "strategy_test.A"},
		{"full path", reflect.TypeOf(A{}), cfg(func(c *apis.Config) { c.FullPkgPath = true }), "dirpx.dev/refl/strategy_test.A"},
		{"ptr", reflect.TypeOf(&A{}), cfg(), "*strategy_test.A"},
		{"builtin", reflect.TypeOf(0), cfg(), "int"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tc.typ, tc.cfg)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := s.TryResolveType(nil, cfg())
	assert.False(t, ok)
}

// TestReflectStrategy_ConcurrentResolve_NoRace verifies that TryResolveType
// is race-free and returns stable names under heavy concurrency.
func TestReflectStrategy_ConcurrentResolve_NoRace(t *testing.T) {
	s := strategy.NewReflectStrategy()
	conf := cfg()
	tys := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(G[int]{}),
	}
	want := make([]string, len(tys))
	for i, tt := range tys {
		name, ok := s.TryResolveType(tt, conf)
		require.True(t, ok)
		require.NotEmpty(t, name)
		want[i] = name
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				j := (i + id) % len(tys)
				if name, ok := s.TryResolveType(tys[j], conf); !ok || name != want[j] {
					t.Errorf("TryResolveType(%v) = (%q,%v), want (%q,true)", tys[j], name, ok, want[j])
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
