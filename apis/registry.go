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

package apis

import "reflect"

// NameRegistry interns strings into stable NameIDs.
// Entries are never removed.
type NameRegistry interface {
	// Intern returns the id of name, allocating one on first sight.
	// The empty string is rejected: it yields InvalidNameID and nothing is
	// stored, so Lookup("") reports false and Count is unchanged.
	Intern(name string) NameID
	// Lookup returns the id of name without interning it.
	Lookup(name string) (NameID, bool)
	// Resolve returns the string behind id, or "" if id was never issued.
	Resolve(id NameID) string
	// Entries returns a snapshot ordered by id.
	Entries() []NameEntry
	// Count returns the number of interned names.
	Count() int
}

// TypeRegistry interns type names into stable TypeIDs and binds Go types
// to them.
type TypeRegistry interface {
	// Intern returns the id of the type name, allocating one on first sight.
	// The empty string is rejected the same way and yields InvalidTypeID.
	Intern(name string) TypeID
	// Lookup returns the id of name without interning it.
	Lookup(name string) (TypeID, bool)
	// Resolve returns the name behind id, or "" if id was never issued.
	Resolve(id TypeID) string
	// Global returns the id of the reserved free-function host type.
	Global() TypeID
	// Bind associates a Go type with id. Binding the same pair twice is a
	// no-op; binding t to a different id fails.
	Bind(t reflect.Type, id TypeID) error
	// Bound returns the id bound to t, if any.
	Bound(t reflect.Type) (TypeID, bool)
	// Entries returns a snapshot ordered by id.
	Entries() []TypeEntry
	// Count returns the number of interned type names.
	Count() int
}

// NameEntry is a single (id, name) association in a NameRegistry snapshot.
type NameEntry struct {
	ID   NameID
	Name string
}

// TypeEntry is a single (id, name) association in a TypeRegistry snapshot.
type TypeEntry struct {
	ID   TypeID
	Name string
	// Type is the bound Go type, nil if none was bound.
	Type reflect.Type
}
