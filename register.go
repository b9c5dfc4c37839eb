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

package refl

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/mngr"
	uref "dirpx.dev/refl/utils/reflect"
)

var (
	// ErrNotInside is returned when an accessor passed to AddBase or
	// AddField does not return an address inside its argument.
	ErrNotInside = errors.New("refl: accessor does not point inside the value")
	// ErrNotStruct is returned by AddStructFields for non-struct types.
	ErrNotStruct = errors.New("refl: not a struct type")
)

// TypeIDOf returns the TypeID of T.
func TypeIDOf[T any](m *mngr.Manager) apis.TypeID {
	return m.TypeIDOf(reflect.TypeFor[T]())
}

// RegisterType registers T under the name the resolver derives for it,
// with a default constructor and a destructor that both zero the storage.
func RegisterType[T any](m *mngr.Manager) (apis.TypeID, error) {
	return RegisterTypeNamed[T](m, "")
}

// RegisterTypeNamed is RegisterType with an explicit name. An empty name
// means the derived one.
func RegisterTypeNamed[T any](m *mngr.Manager, name string) (apis.TypeID, error) {
	rt := reflect.TypeFor[T]()
	var id apis.TypeID
	if name != "" {
		id = m.Types().Intern(name)
	} else {
		id = m.TypeIDOf(rt)
	}
	size, align := uref.Layout(rt)
	if _, err := m.RegisterType(id, size, align, rt); err != nil {
		return id, err
	}

	zero := func(obj, _, _ unsafe.Pointer) error {
		reflect.NewAt(rt, obj).Elem().SetZero()
		return nil
	}
	if err := m.AddConstructor(id, info.Method{Invoke: zero}); err != nil {
		return id, err
	}
	return id, m.SetDestructor(id, info.Method{Invoke: zero})
}

// AddBase declares B as a base of D. up returns the B embedded in a D; the
// offset is measured once on a zero D.
func AddBase[D, B any](m *mngr.Manager, up func(*D) *B) error {
	off, err := offsetOf(up)
	if err != nil {
		return err
	}
	return m.AddBase(TypeIDOf[D](m), info.Base{ID: TypeIDOf[B](m), Offset: off})
}

// AddVirtualBase declares B as a base of D reached through up on every
// cast. down maps a B back to its D; with a nil down, static casts from B
// to D fail.
func AddVirtualBase[D, B any](m *mngr.Manager, up func(*D) *B, down func(*B) *D) error {
	b := info.Base{
		ID: TypeIDOf[B](m),
		ToBase: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(up((*D)(p)))
		},
	}
	if down != nil {
		b.ToDerived = func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(down((*B)(p)))
		}
	}
	return m.AddBase(TypeIDOf[D](m), b)
}

// AddField declares the field of T that get returns, typed F.
func AddField[T, F any](m *mngr.Manager, name string, get func(*T) *F) error {
	off, err := offsetOf(get)
	if err != nil {
		return err
	}
	return m.AddField(TypeIDOf[T](m), m.NameID(name), info.Field{Type: TypeIDOf[F](m), Offset: off})
}

// AddStructFields declares every exported, non-embedded field of the
// struct T under its Go name.
func AddStructFields[T any](m *mngr.Manager) error {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotStruct, rt)
	}
	id := m.TypeIDOf(rt)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		f := info.Field{Type: m.TypeIDOf(sf.Type), Offset: sf.Offset}
		if err := m.AddField(id, m.NameID(sf.Name), f); err != nil {
			return err
		}
	}
	return nil
}

// AddStaticField declares v, a package-level variable, as a field of T.
func AddStaticField[T, F any](m *mngr.Manager, name string, v *F) error {
	return m.AddField(TypeIDOf[T](m), m.NameID(name), info.Field{Type: TypeIDOf[F](m), Fixed: unsafe.Pointer(v)})
}

// AddConstField is AddStaticField for a read-only value.
func AddConstField[T, F any](m *mngr.Manager, name string, v *F) error {
	return m.AddField(TypeIDOf[T](m), m.NameID(name), info.Field{Type: TypeIDOf[F](m), Fixed: unsafe.Pointer(v), Const: true})
}

// AddEnumerator adds name = value to the enum E, which must be registered.
func AddEnumerator[E constraints.Integer](m *mngr.Manager, name string, value E) error {
	p := new(E)
	*p = value
	return m.AddEnumerator(TypeIDOf[E](m), m.NameID(name), int64(value), unsafe.Pointer(p))
}

// AddMethod declares fn, a method expression such as (*T).Scale, as a
// method of T needing a mutable receiver.
func AddMethod[T any](m *mngr.Manager, name string, fn any) error {
	return addMethod[T](m, name, fn, info.Variable)
}

// AddConstMethod declares fn, a method expression such as T.Area, as a
// method of T callable on read-only objects.
func AddConstMethod[T any](m *mngr.Manager, name string, fn any) error {
	return addMethod[T](m, name, fn, info.Const)
}

// AddStaticMethod declares fn, which takes no receiver, as a static method
// of T.
func AddStaticMethod[T any](m *mngr.Manager, name string, fn any) error {
	b, err := bind(fn, nil)
	if err != nil {
		return err
	}
	return m.AddMethod(TypeIDOf[T](m), m.NameID(name), b.method(m, info.Static))
}

// AddFunc declares fn as a free function on the global type.
func AddFunc(m *mngr.Manager, name string, fn any) error {
	b, err := bind(fn, nil)
	if err != nil {
		return err
	}
	return m.AddMethod(m.Global(), m.NameID(name), b.method(m, info.Static))
}

// AddConstructor declares fn, a func returning T or (T, error), as a
// constructor of T taking fn's parameters.
func AddConstructor[T any](m *mngr.Manager, fn any) error {
	b, err := bind(fn, nil)
	if err != nil {
		return err
	}
	if rt := reflect.TypeFor[T](); b.result != rt {
		return fmt.Errorf("%w: constructor of %s returns %v", ErrBadSignature, rt, b.result)
	}
	return m.AddConstructor(TypeIDOf[T](m), info.Method{Params: b.paramIDs(m), Invoke: b.construct})
}

func addMethod[T any](m *mngr.Manager, name string, fn any, kind info.MethodKind) error {
	b, err := bind(fn, reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	return m.AddMethod(TypeIDOf[T](m), m.NameID(name), b.method(m, kind))
}

// offsetOf measures where get points inside a zero T.
func offsetOf[T, F any](get func(*T) *F) (uintptr, error) {
	var v T
	base := uintptr(unsafe.Pointer(&v))
	p := uintptr(unsafe.Pointer(get(&v)))
	if p < base || p+unsafe.Sizeof(*new(F)) > base+unsafe.Sizeof(v) {
		return 0, ErrNotInside
	}
	return p - base, nil
}
