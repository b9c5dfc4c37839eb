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

package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}

// TestConcurrentInternAndResolve verifies that Intern/Resolve/Entries/Count
// are race-free and issue exactly one id per string under concurrent use.
func TestConcurrentInternAndResolve(t *testing.T) {
	reg := registry.NewNames()
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	seen := make([][]apis.NameID, workers)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			ids := make([]apis.NameID, len(words))
			for i := 0; i < 2000; i++ {
				j := (i + id) % len(words)
				got := reg.Intern(words[j])
				if ids[j] != 0 && ids[j] != got {
					t.Errorf("Intern(%q) changed id: %d -> %d", words[j], ids[j], got)
					return
				}
				ids[j] = got
				if s := reg.Resolve(got); s != words[j] {
					t.Errorf("Resolve(%d) = %q, want %q", got, s, words[j])
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
			seen[id] = ids
		}(w)
	}
	wg.Wait()

	if reg.Count() != len(words) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(words))
	}
	for w := 1; w < workers; w++ {
		for j := range words {
			if seen[w][j] != seen[0][j] {
				t.Fatalf("worker %d saw id %d for %q, worker 0 saw %d", w, seen[w][j], words[j], seen[0][j])
			}
		}
	}
}

// TestConcurrentBindAndBound verifies idempotent re-binding under contention.
func TestConcurrentBindAndBound(t *testing.T) {
	reg := registry.NewTypes()
	tys := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}),
	}
	ids := make([]apis.TypeID, len(tys))
	for i, tt := range tys {
		ids[i] = reg.Intern(tt.String())
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(tys)
				if err := reg.Bind(tys[j], ids[j]); err != nil {
					t.Errorf("Bind(%v): %v", tys[j], err)
					return
				}
				if got, ok := reg.Bound(tys[j]); !ok || got != ids[j] {
					t.Errorf("Bound(%v) = (%d,%v), want (%d,true)", tys[j], got, ok, ids[j])
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// This ensures the interfaces are satisfied; not a test but a compile-time check.
var (
	_ apis.NameRegistry = registry.NewNames()
	_ apis.TypeRegistry = registry.NewTypes()
)
