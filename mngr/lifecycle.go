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
	"fmt"
	"unsafe"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/object"
)

// IsConstructible reports whether typeID has a constructor taking argIDs.
func (m *Manager) IsConstructible(typeID apis.TypeID, argIDs []apis.TypeID) bool {
	ti, ok := m.typeinfos[typeID]
	if !ok {
		return false
	}
	_, ok = ti.Constructor(argIDs)
	return ok
}

// IsDestructible reports whether typeID has a destructor.
func (m *Manager) IsDestructible(typeID apis.TypeID) bool {
	ti, ok := m.typeinfos[typeID]
	if !ok {
		return false
	}
	_, ok = ti.Destructor()
	return ok
}

// Construct initialises the storage of obj in place with the constructor
// taking argIDs.
func (m *Manager) Construct(obj object.ObjectPtr, argIDs []apis.TypeID, args unsafe.Pointer) error {
	if obj.IsNil() {
		return ErrNilObject
	}
	ti, err := m.lookup(obj.TypeID())
	if err != nil {
		return err
	}
	ctor, ok := ti.Constructor(argIDs)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotConstructible, m.types.Resolve(obj.TypeID()))
	}
	if err := m.run(ctor.Invoke, obj.Ptr(), args, nil); err != nil {
		return fmt.Errorf("%w: construct %s: %w", ErrInvocationFailed, m.types.Resolve(obj.TypeID()), err)
	}
	return nil
}

// Destruct finalises obj in place. The storage is not released.
func (m *Manager) Destruct(obj object.ConstObjectPtr) error {
	if obj.IsNil() {
		return ErrNilObject
	}
	ti, err := m.lookup(obj.TypeID())
	if err != nil {
		return err
	}
	dtor, ok := ti.Destructor()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotDestructible, m.types.Resolve(obj.TypeID()))
	}
	if err := m.run(dtor.Invoke, obj.Ptr(), nil, nil); err != nil {
		return fmt.Errorf("%w: destruct %s: %w", ErrInvocationFailed, m.types.Resolve(obj.TypeID()), err)
	}
	return nil
}

// New allocates storage for typeID and constructs it with the constructor
// taking argIDs. The result is nil when the type is unknown, no constructor
// matches, storage cannot be obtained or the constructor fails; in the last
// case the storage is released again.
func (m *Manager) New(typeID apis.TypeID, argIDs []apis.TypeID, args unsafe.Pointer) object.ObjectPtr {
	ti, ok := m.typeinfos[typeID]
	if !ok {
		return object.Nil
	}
	if _, ok := ti.Constructor(argIDs); !ok {
		return object.Nil
	}

	p := m.allocate(ti)
	if p == nil {
		m.log.Debug("Allocation failed.", "type", m.types.Resolve(typeID), "size", ti.Size, "align", ti.Align)
		return object.Nil
	}
	obj := object.New(typeID, p)
	if err := m.Construct(obj, argIDs, args); err != nil {
		m.log.Debug("Construction failed.", "type", m.types.Resolve(typeID), "error", err)
		m.release(p)
		return object.Nil
	}
	return obj
}

// Delete destructs obj and releases its storage. It reports false when the
// type has no destructor, the destructor fails, or the storage did not come
// from New or Malloc.
func (m *Manager) Delete(obj object.ConstObjectPtr) bool {
	if obj.IsNil() || !m.IsDestructible(obj.TypeID()) {
		return false
	}
	if err := m.Destruct(obj); err != nil {
		m.log.Debug("Destruction failed.", "type", m.types.Resolve(obj.TypeID()), "error", err)
		return false
	}
	return m.release(obj.Ptr())
}

// Malloc returns size bytes of zeroed storage, nil on failure.
func (m *Manager) Malloc(size uint64) unsafe.Pointer { return m.alloc.Malloc(size) }

// Free releases storage from Malloc.
func (m *Manager) Free(p unsafe.Pointer) bool { return m.alloc.Free(p) }

// AlignedMalloc returns size bytes of zeroed storage aligned to alignment,
// nil on failure.
func (m *Manager) AlignedMalloc(size, alignment uint64) unsafe.Pointer {
	return m.alloc.AlignedMalloc(size, alignment)
}

// AlignedFree releases storage from AlignedMalloc.
func (m *Manager) AlignedFree(p unsafe.Pointer) bool { return m.alloc.AlignedFree(p) }

// ArgsLayout returns the offsets, total size and alignment of an argument
// buffer for argIDs. It reports false when a type has no TypeInfo.
func (m *Manager) ArgsLayout(argIDs []apis.TypeID) (offsets []uintptr, size, align uintptr, ok bool) {
	slots := make([]info.Slot, len(argIDs))
	for i, id := range argIDs {
		ti, found := m.typeinfos[id]
		if !found {
			return nil, 0, 0, false
		}
		slots[i] = info.Slot{Size: ti.Size, Align: ti.Align}
	}
	offsets, size, align = info.Pack(slots)
	return offsets, size, align, true
}

func (m *Manager) allocate(ti *info.TypeInfo) unsafe.Pointer {
	switch {
	case ti.GoType != nil:
		return m.alloc.MallocType(ti.GoType)
	case ti.Align <= unsafe.Alignof(uint64(0)):
		return m.alloc.Malloc(uint64(ti.Size))
	default:
		return m.alloc.AlignedMalloc(uint64(ti.Size), uint64(ti.Align))
	}
}

func (m *Manager) release(p unsafe.Pointer) bool {
	return m.alloc.Free(p) || m.alloc.AlignedFree(p)
}
