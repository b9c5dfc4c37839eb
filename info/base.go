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

// Base describes how a derived object contains a base sub-object.
//
// With ToBase unset the sub-object sits at the constant Offset and both
// directions are plain address arithmetic. With ToBase set the position
// depends on the object (shared or indirect bases); downcasting then needs
// ToDerived and is unavailable without it.
type Base struct {
	// ID is the base type. Set on registration.
	ID apis.TypeID
	// Offset is the static byte offset of the sub-object.
	Offset uintptr
	// ToBase computes the sub-object address from the derived address.
	ToBase func(derived unsafe.Pointer) unsafe.Pointer
	// ToDerived computes the derived address back from the sub-object.
	ToDerived func(base unsafe.Pointer) unsafe.Pointer
}

// IsDynamic reports whether the adjustment depends on the object.
func (b *Base) IsDynamic() bool { return b.ToBase != nil }

// Up adjusts a derived address to the base sub-object.
func (b *Base) Up(derived unsafe.Pointer) unsafe.Pointer {
	if derived == nil {
		return nil
	}
	if b.ToBase != nil {
		return b.ToBase(derived)
	}
	return unsafe.Add(derived, b.Offset)
}

// Down adjusts a base sub-object address to its derived object.
// It reports false when the relation has no inverse.
func (b *Base) Down(base unsafe.Pointer) (unsafe.Pointer, bool) {
	if base == nil {
		return nil, false
	}
	if b.ToBase == nil {
		return unsafe.Add(base, -int(b.Offset)), true
	}
	if b.ToDerived == nil {
		return nil, false
	}
	p := b.ToDerived(base)
	return p, p != nil
}
