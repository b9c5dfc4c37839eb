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

// StaticCastDerivedToBase views obj as its base target, applying the
// adjustments along the first registered path. The result is nil when
// target is not obj's type or one of its bases.
func (m *Manager) StaticCastDerivedToBase(obj object.ObjectPtr, target apis.TypeID) object.ObjectPtr {
	if obj.IsNil() {
		return object.Nil
	}
	p, ok := m.up(obj.TypeID(), obj.Ptr(), target)
	if !ok {
		return object.Nil
	}
	return object.New(target, p)
}

// StaticCastDerivedToBaseConst is StaticCastDerivedToBase for read-only objects.
func (m *Manager) StaticCastDerivedToBaseConst(obj object.ConstObjectPtr, target apis.TypeID) object.ConstObjectPtr {
	if obj.IsNil() {
		return object.NilConst
	}
	p, ok := m.up(obj.TypeID(), obj.Ptr(), target)
	if !ok {
		return object.NilConst
	}
	return object.NewConst(target, p)
}

// StaticCastBaseToDerived views obj as the derived type target without
// checking that the object really is one. The result is nil when no path
// from target to obj's type exists or an edge on it cannot be inverted.
func (m *Manager) StaticCastBaseToDerived(obj object.ObjectPtr, target apis.TypeID) object.ObjectPtr {
	if obj.IsNil() {
		return object.Nil
	}
	p, ok := m.down(obj.Ptr(), obj.TypeID(), target)
	if !ok {
		return object.Nil
	}
	return object.New(target, p)
}

// StaticCastBaseToDerivedConst is StaticCastBaseToDerived for read-only objects.
func (m *Manager) StaticCastBaseToDerivedConst(obj object.ConstObjectPtr, target apis.TypeID) object.ConstObjectPtr {
	if obj.IsNil() {
		return object.NilConst
	}
	p, ok := m.down(obj.Ptr(), obj.TypeID(), target)
	if !ok {
		return object.NilConst
	}
	return object.NewConst(target, p)
}

// DynamicCastBaseToDerived views obj as target after checking, through the
// runtime-identity probe, that the object's actual type is target or
// derives from it.
func (m *Manager) DynamicCastBaseToDerived(obj object.ObjectPtr, target apis.TypeID) object.ObjectPtr {
	if obj.IsNil() {
		return object.Nil
	}
	p, ok := m.dynamic(obj.TypeID(), obj.Ptr(), target)
	if !ok {
		return object.Nil
	}
	return object.New(target, p)
}

// DynamicCastBaseToDerivedConst is DynamicCastBaseToDerived for read-only objects.
func (m *Manager) DynamicCastBaseToDerivedConst(obj object.ConstObjectPtr, target apis.TypeID) object.ConstObjectPtr {
	if obj.IsNil() {
		return object.NilConst
	}
	p, ok := m.dynamic(obj.TypeID(), obj.Ptr(), target)
	if !ok {
		return object.NilConst
	}
	return object.NewConst(target, p)
}

// StaticCast tries a derived-to-base cast, then a static base-to-derived one.
func (m *Manager) StaticCast(obj object.ObjectPtr, target apis.TypeID) object.ObjectPtr {
	if r := m.StaticCastDerivedToBase(obj, target); !r.IsNil() {
		return r
	}
	return m.StaticCastBaseToDerived(obj, target)
}

// StaticCastConst is StaticCast for read-only objects.
func (m *Manager) StaticCastConst(obj object.ConstObjectPtr, target apis.TypeID) object.ConstObjectPtr {
	if r := m.StaticCastDerivedToBaseConst(obj, target); !r.IsNil() {
		return r
	}
	return m.StaticCastBaseToDerivedConst(obj, target)
}

// DynamicCast tries a derived-to-base cast, then a checked base-to-derived one.
func (m *Manager) DynamicCast(obj object.ObjectPtr, target apis.TypeID) object.ObjectPtr {
	if r := m.StaticCastDerivedToBase(obj, target); !r.IsNil() {
		return r
	}
	return m.DynamicCastBaseToDerived(obj, target)
}

// DynamicCastConst is DynamicCast for read-only objects.
func (m *Manager) DynamicCastConst(obj object.ConstObjectPtr, target apis.TypeID) object.ConstObjectPtr {
	if r := m.StaticCastDerivedToBaseConst(obj, target); !r.IsNil() {
		return r
	}
	return m.DynamicCastBaseToDerivedConst(obj, target)
}

// up follows the first path from id to the base target.
func (m *Manager) up(id apis.TypeID, ptr unsafe.Pointer, target apis.TypeID) (unsafe.Pointer, bool) {
	if id == target {
		return ptr, true
	}
	ti, ok := m.typeinfos[id]
	if !ok {
		return nil, false
	}
	bases := ti.Bases()
	for i := range bases {
		b := &bases[i]
		if p, ok := m.up(b.ID, b.Up(ptr), target); ok {
			return p, true
		}
	}
	return nil, false
}

// down maps ptr, the address of a base sub-object, back to the address of
// the derived object, inverting the first invertible path from derived to
// base.
func (m *Manager) down(ptr unsafe.Pointer, base, derived apis.TypeID) (unsafe.Pointer, bool) {
	if base == derived {
		return ptr, true
	}
	ti, ok := m.typeinfos[derived]
	if !ok {
		return nil, false
	}
	bases := ti.Bases()
	for i := range bases {
		b := &bases[i]
		sub, ok := m.down(ptr, base, b.ID)
		if !ok {
			continue
		}
		if p, ok := b.Down(sub); ok {
			return p, true
		}
	}
	return nil, false
}

func (m *Manager) dynamic(id apis.TypeID, ptr unsafe.Pointer, target apis.TypeID) (unsafe.Pointer, bool) {
	if id == target {
		return ptr, true
	}

	// The nearest type in the hierarchy that can identify its instances.
	var (
		probeID  apis.TypeID
		probePtr unsafe.Pointer
		actual   apis.TypeID
	)
	m.walk(id, ptr, func(vid apis.TypeID, ti *info.TypeInfo, vptr unsafe.Pointer) bool {
		if ti == nil || ti.RuntimeType == nil {
			return true
		}
		probeID, probePtr, actual = vid, vptr, ti.RuntimeType(vptr)
		return false
	})
	if !actual.Valid() {
		return nil, false
	}

	full, ok := m.down(probePtr, probeID, actual)
	if !ok {
		return nil, false
	}
	return m.up(actual, full, target)
}
