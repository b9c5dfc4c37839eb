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

// IsStaticInvocable reports whether typeID or a base has a static method
// methodID taking exactly argIDs.
func (m *Manager) IsStaticInvocable(typeID apis.TypeID, methodID apis.NameID, argIDs []apis.TypeID) bool {
	_, _, ok := m.resolve(typeID, nil, methodID, argIDs, info.Static)
	return ok
}

// IsConstInvocable is IsStaticInvocable accepting const methods too.
func (m *Manager) IsConstInvocable(typeID apis.TypeID, methodID apis.NameID, argIDs []apis.TypeID) bool {
	_, _, ok := m.resolve(typeID, nil, methodID, argIDs, info.Const)
	return ok
}

// IsInvocable is IsStaticInvocable accepting any method kind.
func (m *Manager) IsInvocable(typeID apis.TypeID, methodID apis.NameID, argIDs []apis.TypeID) bool {
	_, _, ok := m.resolve(typeID, nil, methodID, argIDs, info.Variable)
	return ok
}

// FindInvocable returns the overload a call with kind would select.
func (m *Manager) FindInvocable(typeID apis.TypeID, methodID apis.NameID, argIDs []apis.TypeID, kind info.MethodKind) (MethodRef, bool) {
	meth, _, ok := m.resolve(typeID, nil, methodID, argIDs, kind)
	if !ok {
		return MethodRef{}, false
	}
	return MethodRef{ID: methodID, Name: m.names.Resolve(methodID), Method: meth}, true
}

// InvokeStatic calls the static method methodID of typeID. args points at
// the packed arguments, result at storage for the return value (nil when
// the caller does not want it).
func (m *Manager) InvokeStatic(typeID apis.TypeID, methodID apis.NameID, argIDs []apis.TypeID, args, result unsafe.Pointer) InvokeResult {
	meth, _, ok := m.resolve(typeID, nil, methodID, argIDs, info.Static)
	if !ok {
		return InvokeResult{Err: ErrNoMatchingMethod}
	}
	return m.call(meth, methodID, nil, args, result)
}

// InvokeConst calls a static or const method on obj.
func (m *Manager) InvokeConst(obj object.ConstObjectPtr, methodID apis.NameID, argIDs []apis.TypeID, args, result unsafe.Pointer) InvokeResult {
	if obj.IsNil() {
		return InvokeResult{Err: ErrNoMatchingMethod}
	}
	meth, recv, ok := m.resolve(obj.TypeID(), obj.Ptr(), methodID, argIDs, info.Const)
	if !ok {
		return InvokeResult{Err: ErrNoMatchingMethod}
	}
	return m.call(meth, methodID, recv, args, result)
}

// Invoke calls a method of any kind on obj.
func (m *Manager) Invoke(obj object.ObjectPtr, methodID apis.NameID, argIDs []apis.TypeID, args, result unsafe.Pointer) InvokeResult {
	if obj.IsNil() {
		return InvokeResult{Err: ErrNoMatchingMethod}
	}
	meth, recv, ok := m.resolve(obj.TypeID(), obj.Ptr(), methodID, argIDs, info.Variable)
	if !ok {
		return InvokeResult{Err: ErrNoMatchingMethod}
	}
	return m.call(meth, methodID, recv, args, result)
}

// IsMetaInvocable reports whether a free function methodID taking argIDs
// is registered on the global type.
func (m *Manager) IsMetaInvocable(methodID apis.NameID, argIDs []apis.TypeID) bool {
	return m.IsStaticInvocable(m.types.Global(), methodID, argIDs)
}

// InvokeMeta calls a free function registered on the global type.
func (m *Manager) InvokeMeta(methodID apis.NameID, argIDs []apis.TypeID, args, result unsafe.Pointer) InvokeResult {
	return m.InvokeStatic(m.types.Global(), methodID, argIDs, args, result)
}

// resolve finds the first overload satisfying kind in search order and the
// receiver adjusted to its owner.
func (m *Manager) resolve(id apis.TypeID, ptr unsafe.Pointer, methodID apis.NameID, argIDs []apis.TypeID, kind info.MethodKind) (*info.Method, unsafe.Pointer, bool) {
	var (
		found *info.Method
		recv  unsafe.Pointer
	)
	m.walk(id, ptr, func(_ apis.TypeID, ti *info.TypeInfo, owner unsafe.Pointer) bool {
		if ti == nil {
			return true
		}
		meth, ok := ti.Overload(methodID, argIDs, kind)
		if !ok {
			return true
		}
		found, recv = meth, owner
		return false
	})
	if found != nil && found.Kind == info.Static {
		recv = nil
	}
	return found, recv, found != nil
}

func (m *Manager) call(meth *info.Method, methodID apis.NameID, recv, args, result unsafe.Pointer) InvokeResult {
	res := InvokeResult{ResultID: meth.Result}
	if err := m.run(meth.Invoke, recv, args, result); err != nil {
		res.Err = fmt.Errorf("%w: %s.%s: %w", ErrInvocationFailed, m.types.Resolve(meth.Owner), m.names.Resolve(methodID), err)
		m.log.Debug("Invocation failed.", "type", m.types.Resolve(meth.Owner), "method", m.names.Resolve(methodID), "error", err)
		return res
	}
	res.Success = true
	return res
}

// run calls fn, turning a panic into an error when the manager is
// configured to recover.
func (m *Manager) run(fn info.Invoker, obj, args, result unsafe.Pointer) (err error) {
	if m.cfg.RecoverPanics {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrPanicked, r)
			}
		}()
	}
	return fn(obj, args, result)
}
