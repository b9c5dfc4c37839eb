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
	"reflect"
	"unsafe"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
)

// RegisterType creates the TypeInfo of id. id must have been issued by the
// TypeRegistry. A non-nil goType is bound to id and makes New allocate
// garbage-collector-visible storage.
func (m *Manager) RegisterType(id apis.TypeID, size, align uintptr, goType reflect.Type) (*info.TypeInfo, error) {
	name := m.types.Resolve(id)
	if !id.Valid() || name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, id)
	}
	if ti, ok := m.typeinfos[id]; ok {
		return ti, fmt.Errorf("%w: %s", ErrTypeExists, name)
	}
	if goType != nil {
		if err := m.types.Bind(goType, id); err != nil {
			return nil, err
		}
	}

	m.log.Debug("Registering type.", "type", name, "id", id, "size", size, "align", align)
	ti := info.NewTypeInfo(id, size, align, goType)
	m.typeinfos[id] = ti
	return ti, nil
}

// AddBase declares b.ID as a direct base of derived.
func (m *Manager) AddBase(derived apis.TypeID, b info.Base) error {
	ti, err := m.lookup(derived)
	if err != nil {
		return err
	}
	if _, err := m.lookup(b.ID); err != nil {
		return err
	}
	if b.ID == derived || m.reaches(b.ID, derived) {
		return fmt.Errorf("%w: %s -> %s", ErrBaseCycle, m.types.Resolve(derived), m.types.Resolve(b.ID))
	}
	if err := ti.AddBase(b); err != nil {
		return fmt.Errorf("%w: %s -> %s", err, m.types.Resolve(derived), m.types.Resolve(b.ID))
	}
	m.log.Debug("Registering base.", "type", m.types.Resolve(derived), "base", m.types.Resolve(b.ID), "dynamic", b.IsDynamic())
	return nil
}

// AddField declares a field named name on typeID.
func (m *Manager) AddField(typeID apis.TypeID, name apis.NameID, f info.Field) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	if !f.Type.Valid() {
		return ErrInvalidType
	}
	if err := ti.AddField(name, f); err != nil {
		return fmt.Errorf("%w: %s.%s", err, m.types.Resolve(typeID), m.names.Resolve(name))
	}
	m.log.Debug("Registering field.", "type", m.types.Resolve(typeID), "field", m.names.Resolve(name), "const", f.Const)
	return nil
}

// AddMethod declares an overload named name on typeID. Free functions are
// added on Global().
func (m *Manager) AddMethod(typeID apis.TypeID, name apis.NameID, meth info.Method) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	if err := ti.AddMethod(name, meth); err != nil {
		return fmt.Errorf("%w: %s.%s", err, m.types.Resolve(typeID), m.names.Resolve(name))
	}
	m.log.Debug("Registering method.", "type", m.types.Resolve(typeID), "method", m.names.Resolve(name), "kind", meth.Kind)
	return nil
}

// AddConstructor declares a constructor of typeID. Its invoker receives the
// storage to initialise as obj.
func (m *Manager) AddConstructor(typeID apis.TypeID, meth info.Method) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	if err := ti.AddConstructor(meth); err != nil {
		return fmt.Errorf("%w: %s", err, m.types.Resolve(typeID))
	}
	m.log.Debug("Registering constructor.", "type", m.types.Resolve(typeID), "params", len(meth.Params))
	return nil
}

// SetDestructor sets the destructor of typeID.
func (m *Manager) SetDestructor(typeID apis.TypeID, meth info.Method) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	if err := ti.SetDestructor(meth); err != nil {
		return fmt.Errorf("%w: %s", err, m.types.Resolve(typeID))
	}
	m.log.Debug("Registering destructor.", "type", m.types.Resolve(typeID))
	return nil
}

// SetRuntimeType installs the runtime-identity probe of typeID.
func (m *Manager) SetRuntimeType(typeID apis.TypeID, probe func(unsafe.Pointer) apis.TypeID) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	ti.RuntimeType = probe
	return nil
}

// AddEnumerator adds name = value to the enum typeID. The enumerator is
// recorded in the EnumInfo of typeID and as a const fixed-value field whose
// value lives at storage.
func (m *Manager) AddEnumerator(typeID apis.TypeID, name apis.NameID, value int64, storage unsafe.Pointer) error {
	ti, err := m.lookup(typeID)
	if err != nil {
		return err
	}
	if storage == nil {
		return ErrNilStorage
	}
	if !name.Valid() {
		return fmt.Errorf("%w: %s", info.ErrInvalidName, m.types.Resolve(typeID))
	}
	ei, ok := m.enuminfos[typeID]
	if ok {
		if _, dup := ei.Value(name); dup {
			return fmt.Errorf("%w: %s.%s", info.ErrEnumeratorExists, m.types.Resolve(typeID), m.names.Resolve(name))
		}
	}
	if _, dup := ti.Field(name); dup {
		return fmt.Errorf("%w: %s.%s", info.ErrFieldExists, m.types.Resolve(typeID), m.names.Resolve(name))
	}
	if !ok {
		ei = info.NewEnumInfo(typeID)
		m.enuminfos[typeID] = ei
	}
	// Both tables accept name now; keep them in step.
	if err := ti.AddField(name, info.Field{Type: typeID, Fixed: storage, Const: true}); err != nil {
		return fmt.Errorf("%w: %s.%s", err, m.types.Resolve(typeID), m.names.Resolve(name))
	}
	if err := ei.Add(name, value); err != nil {
		return fmt.Errorf("%w: %s.%s", err, m.types.Resolve(typeID), m.names.Resolve(name))
	}
	m.log.Debug("Registering enumerator.", "type", m.types.Resolve(typeID), "name", m.names.Resolve(name), "value", value)
	return nil
}

func (m *Manager) lookup(id apis.TypeID) (*info.TypeInfo, error) {
	ti, ok := m.typeinfos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, id)
	}
	return ti, nil
}

// reaches reports whether to is from or one of its transitive bases.
func (m *Manager) reaches(from, to apis.TypeID) bool {
	found := false
	m.walk(from, nil, func(id apis.TypeID, _ *info.TypeInfo, _ unsafe.Pointer) bool {
		found = id == to
		return !found
	})
	return found
}
