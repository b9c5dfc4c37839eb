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
	"dirpx.dev/refl/apis"
)

// NewNames constructs an empty NameRegistry.
func NewNames() apis.NameRegistry {
	return &names{}
}

// names is the default NameRegistry backed by an append-only table.
type names struct {
	t table[apis.NameID]
}

// Ensure names implements apis.NameRegistry.
var _ apis.NameRegistry = (*names)(nil)

// Intern returns the id of name, allocating one on first sight.
func (r *names) Intern(name string) apis.NameID {
	return r.t.intern(name)
}

// Lookup returns the id of name without interning it.
func (r *names) Lookup(name string) (apis.NameID, bool) {
	return r.t.lookup(name)
}

// Resolve returns the string behind id.
func (r *names) Resolve(id apis.NameID) string {
	return r.t.resolve(id)
}

// Entries returns a snapshot ordered by id.
func (r *names) Entries() []apis.NameEntry {
	entries := make([]apis.NameEntry, 0, r.t.count())
	r.t.each(func(id apis.NameID, s string) {
		entries = append(entries, apis.NameEntry{ID: id, Name: s})
	})
	return entries
}

// Count returns the number of interned names.
func (r *names) Count() int {
	return r.t.count()
}
