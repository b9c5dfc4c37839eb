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

package info

import (
	"unsafe"

	"dirpx.dev/refl/apis"
)

// Field describes a named member.
//
// Exactly one of Fixed, OffsetFunc or Offset locates the value: Fixed for
// values that do not live inside the object (enumerators, package-level
// variables), OffsetFunc for layouts that need the object address, and
// Offset otherwise.
type Field struct {
	// Owner is the type that declares the field. Set on registration.
	Owner apis.TypeID
	// Type is the declared type of the value.
	Type apis.TypeID
	// Offset is the byte offset from the owner's address.
	Offset uintptr
	// OffsetFunc computes the value address from the owner's address.
	OffsetFunc func(owner unsafe.Pointer) unsafe.Pointer
	// Fixed points at storage fixed at registration time.
	Fixed unsafe.Pointer
	// Const forbids mutable access to the value.
	Const bool
}

// IsFixed reports whether the value is independent of any object.
func (f *Field) IsFixed() bool { return f.Fixed != nil }

// Addr returns the value address given the owner's address. Fixed fields
// ignore owner; others return nil for a nil owner.
func (f *Field) Addr(owner unsafe.Pointer) unsafe.Pointer {
	switch {
	case f.Fixed != nil:
		return f.Fixed
	case owner == nil:
		return nil
	case f.OffsetFunc != nil:
		return f.OffsetFunc(owner)
	default:
		return unsafe.Add(owner, f.Offset)
	}
}

// NamedField pairs a Field with its name.
type NamedField struct {
	Name apis.NameID
	Field
}
