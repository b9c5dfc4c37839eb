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
	"strconv"
	"unsafe"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/mngr"
	"dirpx.dev/refl/object"
)

var (
	// ErrNilArg is returned by Args for an untyped nil argument.
	ErrNilArg = errors.New("refl: untyped nil argument")
	// ErrResultMismatch is returned when the requested result type differs
	// from the one the matched method returns.
	ErrResultMismatch = errors.New("refl: result type mismatch")
	// ErrNewFailed is returned when the manager could not create an object.
	ErrNewFailed = errors.New("refl: new failed")
)

// Args packs vals into an argument buffer and returns their TypeIDs and
// the buffer. The buffer is ordinary Go memory laid out as a struct with
// one field per value, so it stays valid while the pointer is held.
func Args(m *mngr.Manager, vals ...any) ([]apis.TypeID, unsafe.Pointer, error) {
	if len(vals) == 0 {
		return nil, nil, nil
	}
	ids := make([]apis.TypeID, len(vals))
	fields := make([]reflect.StructField, len(vals))
	for i, v := range vals {
		if v == nil {
			return nil, nil, fmt.Errorf("%w: argument %d", ErrNilArg, i)
		}
		t := reflect.TypeOf(v)
		ids[i] = m.TypeIDOf(t)
		fields[i] = reflect.StructField{Name: "F" + strconv.Itoa(i), Type: t}
	}

	buf := reflect.New(reflect.StructOf(fields)).Elem()
	for i, v := range vals {
		buf.Field(i).Set(reflect.ValueOf(v))
	}
	return ids, buf.Addr().UnsafePointer(), nil
}

// Invoke calls the method name on obj with vals, discarding any result.
func Invoke(m *mngr.Manager, obj object.ObjectPtr, name string, vals ...any) error {
	ids, args, err := Args(m, vals...)
	if err != nil {
		return err
	}
	return m.Invoke(obj, m.NameID(name), ids, args, nil).Err
}

// InvokeAs calls the method name on obj with vals and returns its result.
func InvokeAs[R any](m *mngr.Manager, obj object.ObjectPtr, name string, vals ...any) (R, error) {
	var r R
	if obj.IsNil() {
		return r, mngr.ErrNilObject
	}
	ids, args, err := Args(m, vals...)
	if err != nil {
		return r, err
	}
	nameID := m.NameID(name)
	ref, ok := m.FindInvocable(obj.TypeID(), nameID, ids, info.Variable)
	if !ok {
		return r, mngr.ErrNoMatchingMethod
	}
	if want := TypeIDOf[R](m); ref.Method.Result != want {
		return r, fmt.Errorf("%w: %s returns %s, not %s", ErrResultMismatch, name, m.Types().Resolve(ref.Method.Result), m.Types().Resolve(want))
	}
	res := m.Invoke(obj, nameID, ids, args, unsafe.Pointer(&r))
	return r, res.Err
}

// CallAs calls the free function name with vals and returns its result.
func CallAs[R any](m *mngr.Manager, name string, vals ...any) (R, error) {
	var r R
	ids, args, err := Args(m, vals...)
	if err != nil {
		return r, err
	}
	nameID := m.NameID(name)
	ref, ok := m.FindInvocable(m.Global(), nameID, ids, info.Static)
	if !ok {
		return r, mngr.ErrNoMatchingMethod
	}
	if want := TypeIDOf[R](m); ref.Method.Result != want {
		return r, fmt.Errorf("%w: %s returns %s, not %s", ErrResultMismatch, name, m.Types().Resolve(ref.Method.Result), m.Types().Resolve(want))
	}
	res := m.InvokeMeta(nameID, ids, args, unsafe.Pointer(&r))
	return r, res.Err
}

// NewAs creates a T with the constructor taking vals's types.
func NewAs[T any](m *mngr.Manager, vals ...any) (*T, error) {
	ids, args, err := Args(m, vals...)
	if err != nil {
		return nil, err
	}
	id := TypeIDOf[T](m)
	obj := m.New(id, ids, args)
	p, ok := object.As[T](obj, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNewFailed, m.Types().Resolve(id))
	}
	return p, nil
}

// Of tags v with the TypeID of T.
func Of[T any](m *mngr.Manager, v *T) object.ObjectPtr {
	return object.Of(TypeIDOf[T](m), v)
}

// ConstOf tags v with the TypeID of T for read-only use.
func ConstOf[T any](m *mngr.Manager, v *T) object.ConstObjectPtr {
	return object.ConstOf(TypeIDOf[T](m), v)
}

// As returns obj as a *T when obj is tagged with the TypeID of T.
func As[T any](m *mngr.Manager, obj object.ObjectPtr) (*T, bool) {
	return object.As[T](obj, TypeIDOf[T](m))
}

// Value returns a copy of obj's value when obj is tagged with the TypeID
// of T.
func Value[T any](m *mngr.Manager, obj object.ConstObjectPtr) (T, bool) {
	return object.Value[T](obj, TypeIDOf[T](m))
}
