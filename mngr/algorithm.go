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

// ForEachTypeID calls fn for typeID and each of its transitive bases.
func (m *Manager) ForEachTypeID(typeID apis.TypeID, fn func(apis.TypeID)) {
	m.walk(typeID, nil, func(id apis.TypeID, _ *info.TypeInfo, _ unsafe.Pointer) bool {
		fn(id)
		return true
	})
}

// ForEachType calls fn for typeID and each of its transitive bases.
func (m *Manager) ForEachType(typeID apis.TypeID, fn func(Type)) {
	m.walk(typeID, nil, func(id apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		fn(m.typeOf(id, ti))
		return true
	})
}

// ForEachField calls fn for every field declared on typeID or its bases,
// shadowed ones included.
func (m *Manager) ForEachField(typeID apis.TypeID, fn func(Type, FieldRef)) {
	m.walk(typeID, nil, func(id apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		t := m.typeOf(id, ti)
		fields := ti.Fields()
		for i := range fields {
			fn(t, m.fieldRef(&fields[i]))
		}
		return true
	})
}

// ForEachMethod calls fn for every method declared on typeID or its bases,
// shadowed ones included.
func (m *Manager) ForEachMethod(typeID apis.TypeID, fn func(Type, MethodRef)) {
	m.walk(typeID, nil, func(id apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		t := m.typeOf(id, ti)
		methods := ti.Methods()
		for i := range methods {
			fn(t, m.methodRef(&methods[i]))
		}
		return true
	})
}

// ForEachRWVar calls fn with mutable access to every non-const field value
// of obj, base fields included.
func (m *Manager) ForEachRWVar(obj object.ObjectPtr, fn func(Type, FieldRef, object.ObjectPtr)) {
	if obj.IsNil() {
		return
	}
	m.walk(obj.TypeID(), obj.Ptr(), func(id apis.TypeID, ti *info.TypeInfo, owner unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		t := m.typeOf(id, ti)
		fields := ti.Fields()
		for i := range fields {
			f := &fields[i]
			if f.Const {
				continue
			}
			fn(t, m.fieldRef(f), object.New(f.Type, f.Addr(owner)))
		}
		return true
	})
}

// ForEachRVar calls fn with read-only access to every field value of obj,
// base fields included.
func (m *Manager) ForEachRVar(obj object.ConstObjectPtr, fn func(Type, FieldRef, object.ConstObjectPtr)) {
	if obj.IsNil() {
		return
	}
	m.walk(obj.TypeID(), obj.Ptr(), func(id apis.TypeID, ti *info.TypeInfo, owner unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		t := m.typeOf(id, ti)
		fields := ti.Fields()
		for i := range fields {
			f := &fields[i]
			fn(t, m.fieldRef(f), object.NewConst(f.Type, f.Addr(owner)))
		}
		return true
	})
}

// RWVars collects what ForEachRWVar reports.
func (m *Manager) RWVars(obj object.ObjectPtr) []TypeFieldVar {
	var out []TypeFieldVar
	m.ForEachRWVar(obj, func(t Type, f FieldRef, v object.ObjectPtr) {
		out = append(out, TypeFieldVar{Type: t, Field: f, Var: v})
	})
	return out
}

// RVars collects what ForEachRVar reports.
func (m *Manager) RVars(obj object.ConstObjectPtr) []TypeFieldConstVar {
	var out []TypeFieldConstVar
	m.ForEachRVar(obj, func(t Type, f FieldRef, v object.ConstObjectPtr) {
		out = append(out, TypeFieldConstVar{Type: t, Field: f, Var: v})
	})
	return out
}

// FindType returns the first type in search order satisfying pred.
func (m *Manager) FindType(typeID apis.TypeID, pred func(Type) bool) (Type, bool) {
	var found Type
	ok := !m.walk(typeID, nil, func(id apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		t := m.typeOf(id, ti)
		if pred(t) {
			found = t
			return false
		}
		return true
	})
	return found, ok
}

// FindField returns the first field in search order satisfying pred.
func (m *Manager) FindField(typeID apis.TypeID, pred func(FieldRef) bool) (FieldRef, bool) {
	var found FieldRef
	ok := !m.walk(typeID, nil, func(_ apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		fields := ti.Fields()
		for i := range fields {
			if r := m.fieldRef(&fields[i]); pred(r) {
				found = r
				return false
			}
		}
		return true
	})
	return found, ok
}

// FindMethod returns the first method in search order satisfying pred.
func (m *Manager) FindMethod(typeID apis.TypeID, pred func(MethodRef) bool) (MethodRef, bool) {
	var found MethodRef
	ok := !m.walk(typeID, nil, func(_ apis.TypeID, ti *info.TypeInfo, _ unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		methods := ti.Methods()
		for i := range methods {
			if r := m.methodRef(&methods[i]); pred(r) {
				found = r
				return false
			}
		}
		return true
	})
	return found, ok
}

func (m *Manager) fieldRef(f *info.NamedField) FieldRef {
	return FieldRef{ID: f.Name, Name: m.names.Resolve(f.Name), Field: &f.Field}
}

func (m *Manager) methodRef(f *info.NamedMethod) MethodRef {
	return MethodRef{ID: f.Name, Name: m.names.Resolve(f.Name), Method: &f.Method}
}
