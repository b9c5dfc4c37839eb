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

package mngr

import (
	"unsafe"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
)

type visitFunc func(id apis.TypeID, ti *info.TypeInfo, ptr unsafe.Pointer) bool

// walk visits id and its transitive bases depth-first, self before bases,
// bases in registration order, each TypeID once. ptr is adjusted to every
// visited sub-object; it stays nil for type-only walks. ti is nil for ids
// without a TypeInfo. fn returns false to stop; walk reports whether it ran
// to completion.
func (m *Manager) walk(id apis.TypeID, ptr unsafe.Pointer, fn visitFunc) bool {
	seen := make(map[apis.TypeID]struct{})
	return m.visit(id, ptr, seen, fn)
}

func (m *Manager) visit(id apis.TypeID, ptr unsafe.Pointer, seen map[apis.TypeID]struct{}, fn visitFunc) bool {
	if _, ok := seen[id]; ok {
		return true
	}
	seen[id] = struct{}{}

	ti := m.typeinfos[id]
	if !fn(id, ti, ptr) {
		return false
	}
	if ti == nil {
		return true
	}
	bases := ti.Bases()
	for i := range bases {
		b := &bases[i]
		if !m.visit(b.ID, b.Up(ptr), seen, fn) {
			return false
		}
	}
	return true
}
