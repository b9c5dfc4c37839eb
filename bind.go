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

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/mngr"
	uref "dirpx.dev/refl/utils/reflect"
)

var (
	// ErrNotFunc is returned when a callable is not a Go func.
	ErrNotFunc = errors.New("refl: not a func")
	// ErrBadReceiver is returned when a method's first parameter is not the
	// receiver type or a pointer to it.
	ErrBadReceiver = errors.New("refl: bad receiver")
	// ErrBadSignature is returned for variadic funcs, more than two
	// results, or a second result that is not an error.
	ErrBadSignature = errors.New("refl: unsupported signature")
	// ErrNilArgs is returned when an invoker with parameters gets no
	// argument buffer.
	ErrNilArgs = errors.New("refl: nil argument buffer")
)

var errorType = reflect.TypeFor[error]()

// binding adapts a Go func to info.Invoker. Arguments are read from a
// buffer laid out like a struct with one field per parameter.
type binding struct {
	fn reflect.Value
	// recv is the receiver element type, nil for static callables.
	recv    reflect.Type
	recvPtr bool
	params  []reflect.Type
	offsets []uintptr
	// result is nil for callables returning nothing (or only an error).
	result reflect.Type
	hasErr bool
}

// bind inspects fn. When recv is non-nil the first parameter of fn must be
// recv or *recv.
func bind(fn any, recv reflect.Type) (*binding, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic %s", ErrBadSignature, ft)
	}

	b := &binding{fn: v}
	first := 0
	if recv != nil {
		if ft.NumIn() == 0 {
			return nil, fmt.Errorf("%w: %s has no receiver", ErrBadReceiver, ft)
		}
		switch in := ft.In(0); {
		case in == recv:
		case in.Kind() == reflect.Pointer && in.Elem() == recv:
			b.recvPtr = true
		default:
			return nil, fmt.Errorf("%w: %s is not %s or *%s", ErrBadReceiver, in, recv, recv)
		}
		b.recv = recv
		first = 1
	}

	slots := make([]info.Slot, 0, ft.NumIn()-first)
	for i := first; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		b.params = append(b.params, pt)
		size, align := uref.Layout(pt)
		slots = append(slots, info.Slot{Size: size, Align: align})
	}
	b.offsets, _, _ = info.Pack(slots)

	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			b.hasErr = true
		} else {
			b.result = ft.Out(0)
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second result of %s is not error", ErrBadSignature, ft)
		}
		b.result, b.hasErr = ft.Out(0), true
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadSignature, ft)
	}
	return b, nil
}

// method describes b for registration on m.
func (b *binding) method(m *mngr.Manager, kind info.MethodKind) info.Method {
	meth := info.Method{
		Params: b.paramIDs(m),
		Kind:   kind,
		Invoke: b.invoke,
	}
	if b.result != nil {
		meth.Result = m.TypeIDOf(b.result)
	}
	return meth
}

func (b *binding) paramIDs(m *mngr.Manager) []apis.TypeID {
	if len(b.params) == 0 {
		return nil
	}
	ids := make([]apis.TypeID, len(b.params))
	for i, pt := range b.params {
		ids[i] = m.TypeIDOf(pt)
	}
	return ids
}

func (b *binding) call(obj, args unsafe.Pointer) ([]reflect.Value, error) {
	if len(b.params) > 0 && args == nil {
		return nil, ErrNilArgs
	}
	in := make([]reflect.Value, 0, len(b.params)+1)
	if b.recv != nil {
		p := reflect.NewAt(b.recv, obj)
		if b.recvPtr {
			in = append(in, p)
		} else {
			in = append(in, p.Elem())
		}
	}
	for i, pt := range b.params {
		in = append(in, reflect.NewAt(pt, unsafe.Add(args, b.offsets[i])).Elem())
	}

	out := b.fn.Call(in)
	if b.hasErr {
		if e := out[len(out)-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
	}
	return out, nil
}

func (b *binding) invoke(obj, args, result unsafe.Pointer) error {
	out, err := b.call(obj, args)
	if err != nil {
		return err
	}
	if b.result != nil && result != nil {
		reflect.NewAt(b.result, result).Elem().Set(out[0])
	}
	return nil
}

// construct runs b, a func returning the value, and stores that value in
// obj.
func (b *binding) construct(obj, args, _ unsafe.Pointer) error {
	out, err := b.call(nil, args)
	if err != nil {
		return err
	}
	reflect.NewAt(b.result, obj).Elem().Set(out[0])
	return nil
}
