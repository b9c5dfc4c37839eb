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
	"testing"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/registry"
)

func TestNames_InternIdempotentAndResolve(t *testing.T) {
	reg := registry.NewNames()

	a := reg.Intern("x")
	b := reg.Intern("y")
	if !a.Valid() || !b.Valid() || a == b {
		t.Fatalf("Intern: got (%d,%d), want two distinct valid ids", a, b)
	}
	if again := reg.Intern("x"); again != a {
		t.Fatalf("Intern(x) again = %d, want %d", again, a)
	}
	if got := reg.Resolve(a); got != "x" {
		t.Fatalf("Resolve(%d) = %q, want x", a, got)
	}
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}
}

func TestNames_EmptyAndUnknown(t *testing.T) {
	reg := registry.NewNames()

	if id := reg.Intern(""); id != apis.InvalidNameID {
		t.Fatalf("Intern(\"\") = %d, want invalid", id)
	}
	if _, ok := reg.Lookup(""); ok {
		t.Fatalf("Lookup(\"\") after Intern: want not stored")
	}
	if got := reg.Resolve(42); got != "" {
		t.Fatalf("Resolve(unknown) = %q, want \"\"", got)
	}
	if id, ok := reg.Lookup("missing"); ok || id != apis.InvalidNameID {
		t.Fatalf("Lookup(missing): got (%d,%v), want (0,false)", id, ok)
	}
	if reg.Count() != 0 {
		t.Fatalf("Lookup must not intern: Count() = %d", reg.Count())
	}
}

func TestNames_EntriesOrderedByID(t *testing.T) {
	reg := registry.NewNames()
	for _, s := range []string{"c", "a", "b"} {
		reg.Intern(s)
	}

	entries := reg.Entries()
	want := []string{"c", "a", "b"}
	if len(entries) != len(want) {
		t.Fatalf("Entries len = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name != want[i] || e.ID != apis.NameID(i+1) {
			t.Fatalf("Entries[%d] = %+v, want {%d %s}", i, e, i+1, want[i])
		}
	}
}

func TestTypes_GlobalReserved(t *testing.T) {
	reg := registry.NewTypes()

	g := reg.Global()
	if !g.Valid() {
		t.Fatal("Global() must be valid")
	}
	if got := reg.Resolve(g); got != apis.GlobalTypeName {
		t.Fatalf("Resolve(Global()) = %q, want %q", got, apis.GlobalTypeName)
	}
	if id := reg.Intern(apis.GlobalTypeName); id != g {
		t.Fatalf("Intern(global name) = %d, want %d", id, g)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestTypes_BindIdempotentAndConflict(t *testing.T) {
	reg := registry.NewTypes()
	id1 := reg.Intern("domain.T1")
	id2 := reg.Intern("domain.T2")
	typ := reflect.TypeOf(T1{})

	if err := reg.Bind(typ, id1); err != nil {
		t.Fatalf("Bind: unexpected error: %v", err)
	}
	if err := reg.Bind(typ, id1); err != nil {
		t.Fatalf("Bind idempotent: unexpected error: %v", err)
	}
	if err := reg.Bind(typ, id2); err != registry.ErrConflictingBinding {
		t.Fatalf("expected ErrConflictingBinding, got: %v", err)
	}
	if got, ok := reg.Bound(typ); !ok || got != id1 {
		t.Fatalf("Bound: got (%d,%v), want (%d,true)", got, ok, id1)
	}
}

func TestTypes_BindErrors(t *testing.T) {
	reg := registry.NewTypes()

	if err := reg.Bind(nil, reg.Global()); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Bind(reflect.TypeOf(T1{}), 99); err != registry.ErrInvalidTypeID {
		t.Fatalf("unknown id: want ErrInvalidTypeID, got %v", err)
	}
	if id, ok := reg.Bound(nil); ok || id.Valid() {
		t.Fatalf("Bound(nil): got (%d,%v), want (0,false)", id, ok)
	}
}

func TestTypes_EntriesCarryBinding(t *testing.T) {
	reg := registry.NewTypes()
	id := reg.Intern("domain.T2")
	_ = reg.Bind(reflect.TypeOf(T2{}), id)

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	if entries[0].ID != reg.Global() || entries[0].Type != nil {
		t.Fatalf("Entries[0] = %+v, want unbound global", entries[0])
	}
	if entries[1].ID != id || entries[1].Type != reflect.TypeOf(T2{}) {
		t.Fatalf("Entries[1] = %+v, want bound domain.T2", entries[1])
	}
}
