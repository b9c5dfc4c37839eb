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
	"dirpx.dev/refl/object"
)

// RWVar returns mutable access to the field fieldID of obj or of one of its
// bases. The first match in search order wins; if it is const the result
// is nil.
func (m *Manager) RWVar(obj object.ObjectPtr, fieldID apis.NameID) object.ObjectPtr {
	if obj.IsNil() {
		return object.Nil
	}
	f, p, ok := m.findVar(obj.TypeID(), obj.Ptr(), fieldID)
	if !ok || f.Const {
		return object.Nil
	}
	return object.New(f.Type, p)
}

// RVar returns read-only access to the field fieldID of obj or of one of
// its bases.
func (m *Manager) RVar(obj object.ConstObjectPtr, fieldID apis.NameID) object.ConstObjectPtr {
	if obj.IsNil() {
		return object.NilConst
	}
	f, p, ok := m.findVar(obj.TypeID(), obj.Ptr(), fieldID)
	if !ok {
		return object.NilConst
	}
	return object.NewConst(f.Type, p)
}

// RWStaticVar returns mutable access to a fixed-value field of typeID or of
// one of its bases, without an object.
func (m *Manager) RWStaticVar(typeID apis.TypeID, fieldID apis.NameID) object.ObjectPtr {
	f, _, ok := m.findVar(typeID, nil, fieldID)
	if !ok || f.Const || !f.IsFixed() {
		return object.Nil
	}
	return object.New(f.Type, f.Fixed)
}

// RStaticVar returns read-only access to a fixed-value field of typeID or
// of one of its bases. Enumerators are reached this way.
func (m *Manager) RStaticVar(typeID apis.TypeID, fieldID apis.NameID) object.ConstObjectPtr {
	f, _, ok := m.findVar(typeID, nil, fieldID)
	if !ok || !f.IsFixed() {
		return object.NilConst
	}
	return object.NewConst(f.Type, f.Fixed)
}

// findVar returns the first field named fieldID and its value address.
func (m *Manager) findVar(id apis.TypeID, ptr unsafe.Pointer, fieldID apis.NameID) (*info.Field, unsafe.Pointer, bool) {
	var (
		found *info.Field
		addr  unsafe.Pointer
	)
	m.walk(id, ptr, func(_ apis.TypeID, ti *info.TypeInfo, owner unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		f, ok := ti.Field(fieldID)
		if !ok {
			return true
		}
		found, addr = f, f.Addr(owner)
		return false
	})
	return found, addr, found != nil
}
