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

// Package object provides type-tagged, non-owning views of object storage.
//
// An ObjectPtr pairs a TypeID with the address of an object whose exact
// runtime type is that TypeID. Neither ObjectPtr nor ConstObjectPtr owns
// the storage; lifetime is the caller's responsibility. Constructing a view
// whose tag does not match its storage is undefined behaviour.
package object

import (
	"fmt"
	"unsafe"

	"dirpx.dev/refl/apis"
)

// ObjectPtr is a mutable view of an object.
type ObjectPtr struct {
	id  apis.TypeID
	ptr unsafe.Pointer
}

// ConstObjectPtr is a read-only view of an object. It wraps an ObjectPtr
// rather than repeating its fields, so ObjectPtr(c) does not compile and
// AsConst is the only conversion between the two.
type ConstObjectPtr struct {
	p ObjectPtr
}

// Nil is the null ObjectPtr.
var Nil ObjectPtr

// NilConst is the null ConstObjectPtr.
var NilConst ConstObjectPtr

// New tags ptr with id. A nil ptr or invalid id yields Nil.
func New(id apis.TypeID, ptr unsafe.Pointer) ObjectPtr {
	if ptr == nil || !id.Valid() {
		return Nil
	}
	return ObjectPtr{id: id, ptr: ptr}
}

// NewConst tags ptr with id for read-only use. A nil ptr or invalid id
// yields NilConst.
func NewConst(id apis.TypeID, ptr unsafe.Pointer) ConstObjectPtr {
	if ptr == nil || !id.Valid() {
		return NilConst
	}
	return ConstObjectPtr{p: ObjectPtr{id: id, ptr: ptr}}
}

// Of tags the address of v with id.
func Of[T any](id apis.TypeID, v *T) ObjectPtr {
	return New(id, unsafe.Pointer(v))
}

// ConstOf tags the address of v with id for read-only use.
func ConstOf[T any](id apis.TypeID, v *T) ConstObjectPtr {
	return NewConst(id, unsafe.Pointer(v))
}

// TypeID returns the tag.
func (p ObjectPtr) TypeID() apis.TypeID { return p.id }

// Ptr returns the raw address.
func (p ObjectPtr) Ptr() unsafe.Pointer { return p.ptr }

// IsNil reports whether p is the null view.
func (p ObjectPtr) IsNil() bool { return p.ptr == nil }

// AsConst drops mutable access.
func (p ObjectPtr) AsConst() ConstObjectPtr { return ConstObjectPtr{p: p} }

// String implements fmt.Stringer.
func (p ObjectPtr) String() string {
	return fmt.Sprintf("ObjectPtr{type:%d, ptr:%p}", p.id, p.ptr)
}

// TypeID returns the tag.
func (p ConstObjectPtr) TypeID() apis.TypeID { return p.p.id }

// Ptr returns the raw address. Writing through it breaks the read-only
// contract of the view.
func (p ConstObjectPtr) Ptr() unsafe.Pointer { return p.p.ptr }

// IsNil reports whether p is the null view.
func (p ConstObjectPtr) IsNil() bool { return p.p.ptr == nil }

// String implements fmt.Stringer.
func (p ConstObjectPtr) String() string {
	return fmt.Sprintf("ConstObjectPtr{type:%d, ptr:%p}", p.p.id, p.p.ptr)
}

// As returns p's storage as *T when p is tagged with id.
// The caller vouches that id is the TypeID of T.
func As[T any](p ObjectPtr, id apis.TypeID) (*T, bool) {
	if p.IsNil() || p.id != id {
		return nil, false
	}
	return reinterpret[T](p.ptr), true
}

// Value returns a copy of p's object when p is tagged with id.
// The caller vouches that id is the TypeID of T.
func Value[T any](p ConstObjectPtr, id apis.TypeID) (T, bool) {
	if p.IsNil() || p.p.id != id {
		var zero T
		return zero, false
	}
	return *reinterpret[T](p.p.ptr), true
}

// reinterpret is the only place where an address is viewed as a Go type.
func reinterpret[T any](ptr unsafe.Pointer) *T {
	return (*T)(ptr)
}
