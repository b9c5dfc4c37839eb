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
	"errors"
	"reflect"
	"unsafe"

	"dirpx.dev/refl/apis"
)

var (
	// ErrFieldExists is returned when a type already declares a field name.
	ErrFieldExists = errors.New("refl(info): field already registered")
	// ErrDuplicateOverload is returned when a name already has an overload
	// with the same parameter sequence.
	ErrDuplicateOverload = errors.New("refl(info): overload already registered")
	// ErrDuplicateConstructor is returned when a constructor with the same
	// parameter sequence exists.
	ErrDuplicateConstructor = errors.New("refl(info): constructor already registered")
	// ErrBaseExists is returned when a base is registered twice.
	ErrBaseExists = errors.New("refl(info): base already registered")
	// ErrNilInvoker is returned when a callable has no entry point.
	ErrNilInvoker = errors.New("refl(info): nil invoker")
	// ErrInvalidName is returned for an invalid NameID.
	ErrInvalidName = errors.New("refl(info): invalid name id")
)

// TypeInfo is the descriptor table of one type.
type TypeInfo struct {
	// ID is the described type.
	ID apis.TypeID
	// Size and Align describe the storage New allocates.
	Size  uintptr
	Align uintptr
	// GoType is the Go type behind ID, nil for types without one. When set,
	// New allocates garbage-collector-visible storage.
	GoType reflect.Type
	// RuntimeType reports the exact type of the object at the given address.
	// It plays the role of a vtable for dynamic casts and is nil for types
	// whose instances cannot identify themselves.
	RuntimeType func(obj unsafe.Pointer) apis.TypeID

	fields     []NamedField
	fieldIndex map[apis.NameID]int

	methods     []NamedMethod
	methodIndex map[apis.NameID][]int

	ctors []Method
	dtor  *Method

	bases     []Base
	baseIndex map[apis.TypeID]int
}

// NewTypeInfo constructs an empty table. An alignment of zero is treated as 1.
func NewTypeInfo(id apis.TypeID, size, align uintptr, goType reflect.Type) *TypeInfo {
	if align == 0 {
		align = 1
	}
	return &TypeInfo{
		ID:          id,
		Size:        size,
		Align:       align,
		GoType:      goType,
		fieldIndex:  make(map[apis.NameID]int),
		methodIndex: make(map[apis.NameID][]int),
		baseIndex:   make(map[apis.TypeID]int),
	}
}

// AddField appends a field. Names are unique per type.
func (ti *TypeInfo) AddField(name apis.NameID, f Field) error {
	if !name.Valid() {
		return ErrInvalidName
	}
	if _, ok := ti.fieldIndex[name]; ok {
		return ErrFieldExists
	}
	f.Owner = ti.ID
	ti.fieldIndex[name] = len(ti.fields)
	ti.fields = append(ti.fields, NamedField{Name: name, Field: f})
	return nil
}

// Field returns the field declared under name.
func (ti *TypeInfo) Field(name apis.NameID) (*Field, bool) {
	i, ok := ti.fieldIndex[name]
	if !ok {
		return nil, false
	}
	return &ti.fields[i].Field, true
}

// Fields returns the declared fields in registration order.
// The slice is owned by ti and must not be modified.
func (ti *TypeInfo) Fields() []NamedField { return ti.fields }

// AddMethod appends an overload of name. Overloads must differ in their
// parameter sequence.
func (ti *TypeInfo) AddMethod(name apis.NameID, m Method) error {
	if !name.Valid() {
		return ErrInvalidName
	}
	if m.Invoke == nil {
		return ErrNilInvoker
	}
	for _, i := range ti.methodIndex[name] {
		if ti.methods[i].Accepts(m.Params) {
			return ErrDuplicateOverload
		}
	}
	m.Owner = ti.ID
	ti.methodIndex[name] = append(ti.methodIndex[name], len(ti.methods))
	ti.methods = append(ti.methods, NamedMethod{Name: name, Method: m})
	return nil
}

// Overload returns the first overload of name that accepts argIDs and can
// be called with a receiver of kind k.
func (ti *TypeInfo) Overload(name apis.NameID, argIDs []apis.TypeID, k MethodKind) (*Method, bool) {
	for _, i := range ti.methodIndex[name] {
		m := &ti.methods[i].Method
		if m.Satisfies(k) && m.Accepts(argIDs) {
			return m, true
		}
	}
	return nil, false
}

// Methods returns the declared methods in registration order.
// The slice is owned by ti and must not be modified.
func (ti *TypeInfo) Methods() []NamedMethod { return ti.methods }

// AddConstructor appends a constructor. Its receiver is the storage to
// initialise.
func (ti *TypeInfo) AddConstructor(m Method) error {
	if m.Invoke == nil {
		return ErrNilInvoker
	}
	for i := range ti.ctors {
		if ti.ctors[i].Accepts(m.Params) {
			return ErrDuplicateConstructor
		}
	}
	m.Owner = ti.ID
	m.Kind = Variable
	m.Result = apis.InvalidTypeID
	ti.ctors = append(ti.ctors, m)
	return nil
}

// Constructor returns the constructor accepting argIDs.
func (ti *TypeInfo) Constructor(argIDs []apis.TypeID) (*Method, bool) {
	for i := range ti.ctors {
		if ti.ctors[i].Accepts(argIDs) {
			return &ti.ctors[i], true
		}
	}
	return nil, false
}

// Constructors returns the constructors in registration order.
func (ti *TypeInfo) Constructors() []Method { return ti.ctors }

// SetDestructor installs the destructor, replacing any previous one.
func (ti *TypeInfo) SetDestructor(m Method) error {
	if m.Invoke == nil {
		return ErrNilInvoker
	}
	m.Owner = ti.ID
	m.Kind = Const
	m.Params = nil
	m.Result = apis.InvalidTypeID
	ti.dtor = &m
	return nil
}

// Destructor returns the destructor, if any.
func (ti *TypeInfo) Destructor() (*Method, bool) {
	return ti.dtor, ti.dtor != nil
}

// AddBase appends a direct base. Bases are searched in registration order.
func (ti *TypeInfo) AddBase(b Base) error {
	if _, ok := ti.baseIndex[b.ID]; ok {
		return ErrBaseExists
	}
	ti.baseIndex[b.ID] = len(ti.bases)
	ti.bases = append(ti.bases, b)
	return nil
}

// Base returns the direct base relation to id.
func (ti *TypeInfo) Base(id apis.TypeID) (*Base, bool) {
	i, ok := ti.baseIndex[id]
	if !ok {
		return nil, false
	}
	return &ti.bases[i], true
}

// Bases returns the direct bases in registration order.
// The slice is owned by ti and must not be modified.
func (ti *TypeInfo) Bases() []Base { return ti.bases }
