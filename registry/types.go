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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/refl/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("refl(registry): nil reflect.Type provided")
	// ErrInvalidTypeID is returned when binding to an id that was never issued.
	ErrInvalidTypeID = errors.New("refl(registry): type id was not issued")
	// ErrConflictingBinding indicates an attempt to re-bind a Go type
	// to a different TypeID.
	ErrConflictingBinding = errors.New("refl(registry): conflicting type binding")
)

// NewTypes constructs a TypeRegistry. The global pseudo-type is interned
// first, so it always holds the smallest issued id.
func NewTypes() apis.TypeRegistry {
	r := &types{}
	r.global = r.t.intern(apis.GlobalTypeName)
	return r
}

// types is the default TypeRegistry backed by an append-only table and a
// sync.Map of Go type bindings.
type types struct {
	t      table[apis.TypeID]
	global apis.TypeID
	// bmu serializes binders.
	bmu sync.Mutex
	// bound maps reflect.Type to TypeID.
	bound sync.Map // map[reflect.Type]apis.TypeID
	// goTypes maps TypeID to reflect.Type for snapshots.
	goTypes sync.Map // map[apis.TypeID]reflect.Type
}

// Ensure types implements apis.TypeRegistry.
var _ apis.TypeRegistry = (*types)(nil)

// Intern returns the id of name, allocating one on first sight.
func (r *types) Intern(name string) apis.TypeID {
	return r.t.intern(name)
}

// Lookup returns the id of name without interning it.
func (r *types) Lookup(name string) (apis.TypeID, bool) {
	return r.t.lookup(name)
}

// Resolve returns the name behind id.
func (r *types) Resolve(id apis.TypeID) string {
	return r.t.resolve(id)
}

// Global returns the id of the reserved free-function host type.
func (r *types) Global() apis.TypeID {
	return r.global
}

// Bind associates t with id. It is idempotent for the same (type, id) pair.
func (r *types) Bind(t reflect.Type, id apis.TypeID) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if r.t.resolve(id) == "" {
		return ErrInvalidTypeID
	}
	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.bound.Load(t); ok {
		if old.(apis.TypeID) == id {
			return nil
		}
		return ErrConflictingBinding
	}

	r.bmu.Lock()
	defer r.bmu.Unlock()
	if old, ok := r.bound.Load(t); ok {
		if old.(apis.TypeID) == id {
			return nil
		}
		return ErrConflictingBinding
	}
	r.bound.Store(t, id)
	// First binding wins for the reverse view.
	r.goTypes.LoadOrStore(id, t)
	return nil
}

// Bound returns the id bound to t.
func (r *types) Bound(t reflect.Type) (apis.TypeID, bool) {
	if t == nil {
		return apis.InvalidTypeID, false
	}
	if v, ok := r.bound.Load(t); ok {
		return v.(apis.TypeID), true
	}
	return apis.InvalidTypeID, false
}

// Entries returns a snapshot ordered by id.
func (r *types) Entries() []apis.TypeEntry {
	entries := make([]apis.TypeEntry, 0, r.t.count())
	r.t.each(func(id apis.TypeID, s string) {
		e := apis.TypeEntry{ID: id, Name: s}
		if gt, ok := r.goTypes.Load(id); ok {
			e.Type = gt.(reflect.Type)
		}
		entries = append(entries, e)
	})
	return entries
}

// Count returns the number of interned type names, the global pseudo-type
// included.
func (r *types) Count() int {
	return r.t.count()
}
