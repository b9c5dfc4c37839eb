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

	"golang.org/x/exp/slices"

	"dirpx.dev/refl/apis"
)

// MethodKind says what receiver a method needs.
type MethodKind uint8

const (
	// Variable methods need a mutable receiver.
	Variable MethodKind = iota
	// Const methods accept a read-only receiver.
	Const
	// Static methods take no receiver.
	Static
)

// String implements fmt.Stringer.
func (k MethodKind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Const:
		return "const"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// Invoker is the boxed entry point of a method, constructor or destructor.
// obj is the receiver (nil for static methods), args points at the packed
// argument buffer (nil without parameters) and result at storage sized for
// the return type (nil to discard it).
type Invoker func(obj, args, result unsafe.Pointer) error

// Method describes a named callable.
type Method struct {
	// Owner is the declaring type. Set on registration.
	Owner apis.TypeID
	// Params is the exact parameter type sequence.
	Params []apis.TypeID
	// Result is the return type, InvalidTypeID for none.
	Result apis.TypeID
	// Kind is the receiver requirement.
	Kind MethodKind
	// Invoke is the entry point.
	Invoke Invoker
}

// Accepts reports whether argIDs matches Params exactly.
func (m *Method) Accepts(argIDs []apis.TypeID) bool {
	return slices.Equal(m.Params, argIDs)
}

// Satisfies reports whether m can be called with a receiver of kind k:
// a Static call needs a static method, a Const call a const or static one,
// and a Variable call accepts all three.
func (m *Method) Satisfies(k MethodKind) bool {
	switch k {
	case Static:
		return m.Kind == Static
	case Const:
		return m.Kind == Static || m.Kind == Const
	default:
		return true
	}
}

// NamedMethod pairs a Method with its name.
type NamedMethod struct {
	Name apis.NameID
	Method
}
