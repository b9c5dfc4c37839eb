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

package info_test

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
)

const (
	intID   apis.TypeID = 2
	floatID apis.TypeID = 3
	ownerID apis.TypeID = 4
)

func nop(unsafe.Pointer, unsafe.Pointer, unsafe.Pointer) error { return nil }

func TestTypeInfo_FieldsKeepOrderAndOwner(t *testing.T) {
	ti := info.NewTypeInfo(ownerID, 16, 8, nil)

	require.NoError(t, ti.AddField(3, info.Field{Type: intID, Offset: 8}))
	require.NoError(t, ti.AddField(1, info.Field{Type: intID}))
	require.ErrorIs(t, ti.AddField(3, info.Field{}), info.ErrFieldExists)
	require.ErrorIs(t, ti.AddField(apis.InvalidNameID, info.Field{}), info.ErrInvalidName)

	var names []apis.NameID
	for _, f := range ti.Fields() {
		names = append(names, f.Name)
		assert.Equal(t, ownerID, f.Owner)
	}
	if diff := cmp.Diff([]apis.NameID{3, 1}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	f, ok := ti.Field(3)
	require.True(t, ok)
	assert.Equal(t, uintptr(8), f.Offset)
}

func TestTypeInfo_OverloadResolution(t *testing.T) {
	ti := info.NewTypeInfo(ownerID, 0, 1, nil)
	const name apis.NameID = 5

	require.NoError(t, ti.AddMethod(name, info.Method{Params: []apis.TypeID{intID}, Kind: info.Variable, Invoke: nop}))
	require.NoError(t, ti.AddMethod(name, info.Method{Params: []apis.TypeID{floatID}, Kind: info.Const, Invoke: nop}))
	require.NoError(t, ti.AddMethod(name, info.Method{Kind: info.Static, Invoke: nop}))
	require.ErrorIs(t, ti.AddMethod(name, info.Method{Params: []apis.TypeID{intID}, Invoke: nop}), info.ErrDuplicateOverload)
	require.ErrorIs(t, ti.AddMethod(name, info.Method{Params: []apis.TypeID{intID, intID}}), info.ErrNilInvoker)

	cases := []struct {
		desc string
		args []apis.TypeID
		kind info.MethodKind
		ok   bool
	}{
		{"variable call sees variable overload", []apis.TypeID{intID}, info.Variable, true},
		{"const call skips variable overload", []apis.TypeID{intID}, info.Const, false},
		{"const call sees const overload", []apis.TypeID{floatID}, info.Const, true},
		{"static call skips const overload", []apis.TypeID{floatID}, info.Static, false},
		{"static call sees static overload", nil, info.Static, true},
		{"empty args match nil params", []apis.TypeID{}, info.Static, true},
		{"no implicit conversion", []apis.TypeID{intID, floatID}, info.Variable, false},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			m, ok := ti.Overload(name, tc.args, tc.kind)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, ownerID, m.Owner)
			}
		})
	}
}

func TestTypeInfo_ConstructorsAndDestructor(t *testing.T) {
	ti := info.NewTypeInfo(ownerID, 8, 8, reflect.TypeOf(int64(0)))

	require.NoError(t, ti.AddConstructor(info.Method{Invoke: nop}))
	require.NoError(t, ti.AddConstructor(info.Method{Params: []apis.TypeID{intID}, Invoke: nop}))
	require.ErrorIs(t, ti.AddConstructor(info.Method{Invoke: nop}), info.ErrDuplicateConstructor)

	_, ok := ti.Constructor(nil)
	assert.True(t, ok)
	_, ok = ti.Constructor([]apis.TypeID{floatID})
	assert.False(t, ok)
	assert.Len(t, ti.Constructors(), 2)

	_, ok = ti.Destructor()
	assert.False(t, ok)
	require.NoError(t, ti.SetDestructor(info.Method{Params: []apis.TypeID{intID}, Invoke: nop}))
	d, ok := ti.Destructor()
	require.True(t, ok)
	assert.Empty(t, d.Params)
	assert.Equal(t, info.Const, d.Kind)
}

func TestBase_StaticRoundTrip(t *testing.T) {
	type derived struct {
		pad  int64
		base int32
	}
	var d derived
	b := info.Base{ID: intID, Offset: unsafe.Offsetof(d.base)}

	up := b.Up(unsafe.Pointer(&d))
	assert.Equal(t, unsafe.Pointer(&d.base), up)
	down, ok := b.Down(up)
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&d), down)
	assert.False(t, b.IsDynamic())
}

func TestBase_DynamicNeedsInverse(t *testing.T) {
	shared := new(int64)
	b := info.Base{ID: intID, ToBase: func(unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(shared) }}
	var owner int64

	assert.Equal(t, unsafe.Pointer(shared), b.Up(unsafe.Pointer(&owner)))
	_, ok := b.Down(unsafe.Pointer(shared))
	assert.False(t, ok, "dynamic base without ToDerived cannot be downcast")

	b.ToDerived = func(unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(&owner) }
	p, ok := b.Down(unsafe.Pointer(shared))
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&owner), p)
	assert.Nil(t, b.Up(nil))
}

func TestEnumInfo_BothDirections(t *testing.T) {
	e := info.NewEnumInfo(ownerID)
	require.NoError(t, e.Add(10, 0))
	require.NoError(t, e.Add(11, 1))
	require.NoError(t, e.Add(12, 1)) // alias
	require.ErrorIs(t, e.Add(10, 5), info.ErrEnumeratorExists)

	v, ok := e.Value(11)
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	n, ok := e.Name(1)
	require.True(t, ok)
	assert.Equal(t, apis.NameID(11), n, "reverse lookup returns the first registered name")

	_, ok = e.Name(7)
	assert.False(t, ok)
	assert.Equal(t, 3, e.Len())
}

func TestPack_MatchesStructLayout(t *testing.T) {
	type args struct {
		A int8
		B int64
		C int16
		D float32
	}
	rt := reflect.TypeOf(args{})
	slots := make([]info.Slot, rt.NumField())
	for i := range slots {
		ft := rt.Field(i).Type
		slots[i] = info.Slot{Size: ft.Size(), Align: uintptr(ft.Align())}
	}

	offsets, size, align := info.Pack(slots)
	for i := range slots {
		assert.Equal(t, rt.Field(i).Offset, offsets[i], "offset of field %d", i)
	}
	assert.Equal(t, rt.Size(), size)
	assert.Equal(t, uintptr(rt.Align()), align)
}
