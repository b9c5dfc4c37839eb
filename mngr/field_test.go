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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/object"
)

type color int32

var (
	red   = color(0)
	green = color(1)
	blue  = color(2)
)

func TestRWVarReachesBaseFields(t *testing.T) {
	d := newDiamond(t)
	b := bottom{X: 1}
	b.left.L = 2
	b.right.R = 3
	b.left.T = 4
	obj := object.Of(d.bottom, &b)

	r := d.m.RWVar(obj, d.m.NameID("R"))
	require.False(t, r.IsNil())
	assert.Equal(t, d.i32, r.TypeID())
	p, ok := object.As[int32](r, d.i32)
	require.True(t, ok)
	assert.Equal(t, int32(3), *p)

	*p = 30
	assert.Equal(t, int32(30), b.right.R)

	// T is found through left first.
	tv, ok := object.Value[int64](d.m.RVar(obj.AsConst(), d.m.NameID("T")), d.i64)
	require.True(t, ok)
	assert.Equal(t, int64(4), tv)

	assert.True(t, d.m.RWVar(obj, d.m.NameID("missing")).IsNil())
	assert.True(t, d.m.RVar(object.NilConst, d.m.NameID("X")).IsNil())
}

func TestRWVarShadowing(t *testing.T) {
	d := newDiamond(t)
	var b bottom
	// A second T on bottom shadows the one in top.
	require.NoError(t, d.m.AddField(d.bottom, d.m.NameID("T"), info.Field{Type: d.i32, Offset: unsafe.Offsetof(b.X)}))

	got := d.m.RVar(object.ConstOf(d.bottom, &b), d.m.NameID("T"))
	assert.Equal(t, d.i32, got.TypeID())
	assert.Equal(t, unsafe.Pointer(&b.X), got.Ptr())
}

func TestRWVarRefusesConst(t *testing.T) {
	m := newTestManager(t)
	i64 := register[int64](t, m)
	cnt := register[counter](t, m)
	var c counter
	require.NoError(t, m.AddField(cnt, m.NameID("pad"), info.Field{Type: i64, Offset: unsafe.Offsetof(c.pad), Const: true}))

	obj := object.Of(cnt, &c)
	assert.True(t, m.RWVar(obj, m.NameID("pad")).IsNil())
	assert.False(t, m.RVar(obj.AsConst(), m.NameID("pad")).IsNil())
}

func TestOffsetFuncField(t *testing.T) {
	m := newTestManager(t)
	i32 := register[int32](t, m)
	cnt := register[counter](t, m)
	require.NoError(t, m.AddField(cnt, m.NameID("N"), info.Field{
		Type:       i32,
		OffsetFunc: func(p unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(&(*counter)(p).N) },
	}))

	c := counter{N: 9}
	v, ok := object.Value[int32](m.RVar(object.ConstOf(cnt, &c), m.NameID("N")), i32)
	require.True(t, ok)
	assert.Equal(t, int32(9), v)
}

func registerColor(t *testing.T, m *Manager) apis.TypeID {
	t.Helper()
	id := register[color](t, m)
	require.NoError(t, m.AddEnumerator(id, m.NameID("Red"), int64(red), unsafe.Pointer(&red)))
	require.NoError(t, m.AddEnumerator(id, m.NameID("Green"), int64(green), unsafe.Pointer(&green)))
	require.NoError(t, m.AddEnumerator(id, m.NameID("Blue"), int64(blue), unsafe.Pointer(&blue)))
	return id
}

func TestEnumeratorRoundTrip(t *testing.T) {
	m := newTestManager(t)
	id := registerColor(t, m)

	v := m.RStaticVar(id, m.NameID("Green"))
	require.False(t, v.IsNil())
	c, ok := object.Value[color](v, id)
	require.True(t, ok)
	assert.Equal(t, green, c)

	// Enumerators are read-only.
	assert.True(t, m.RWStaticVar(id, m.NameID("Green")).IsNil())

	f, ok := m.FindField(id, func(f FieldRef) bool {
		val, _ := object.Value[color](object.NewConst(f.Field.Type, f.Field.Addr(nil)), id)
		return val == blue
	})
	require.True(t, ok)
	assert.Equal(t, "Blue", f.Name)

	ei, ok := m.EnumInfo(id)
	require.True(t, ok)
	name, ok := ei.Name(int64(red))
	require.True(t, ok)
	assert.Equal(t, "Red", m.Names().Resolve(name))
	assert.Equal(t, 3, ei.Len())
}

func TestAddEnumeratorErrors(t *testing.T) {
	m := newTestManager(t)
	id := registerColor(t, m)
	assert.ErrorIs(t, m.AddEnumerator(id, m.NameID("Red"), 5, unsafe.Pointer(&red)), info.ErrEnumeratorExists)
	assert.ErrorIs(t, m.AddEnumerator(id, m.NameID("Cyan"), 5, nil), ErrNilStorage)
	assert.ErrorIs(t, m.AddEnumerator(apis.TypeID(999), m.NameID("Cyan"), 5, unsafe.Pointer(&red)), ErrUnknownType)
	assert.ErrorIs(t, m.AddEnumerator(id, apis.InvalidNameID, 5, unsafe.Pointer(&red)), info.ErrInvalidName)

	// A plain field already holding the name leaves the enum table untouched.
	require.NoError(t, m.AddField(id, m.NameID("Cyan"), info.Field{Type: id, Fixed: unsafe.Pointer(&red), Const: true}))
	assert.ErrorIs(t, m.AddEnumerator(id, m.NameID("Cyan"), 5, unsafe.Pointer(&red)), info.ErrFieldExists)
	ei, ok := m.EnumInfo(id)
	require.True(t, ok)
	_, ok = ei.Value(m.NameID("Cyan"))
	assert.False(t, ok)
	assert.Equal(t, 3, ei.Len())
}

func TestAddEnumeratorFailureCreatesNoEnum(t *testing.T) {
	m := newTestManager(t)
	i32 := register[int32](t, m)
	require.NoError(t, m.AddField(i32, m.NameID("Zero"), info.Field{Type: i32, Fixed: unsafe.Pointer(&red), Const: true}))

	assert.ErrorIs(t, m.AddEnumerator(i32, m.NameID("Zero"), 0, unsafe.Pointer(&red)), info.ErrFieldExists)
	_, ok := m.EnumInfo(i32)
	assert.False(t, ok)
}

func TestStaticVar(t *testing.T) {
	m := newTestManager(t)
	i64 := register[int64](t, m)
	cnt := register[counter](t, m)
	var total int64 = 7
	require.NoError(t, m.AddField(cnt, m.NameID("total"), info.Field{Type: i64, Fixed: unsafe.Pointer(&total)}))

	v := m.RWStaticVar(cnt, m.NameID("total"))
	p, ok := object.As[int64](v, i64)
	require.True(t, ok)
	*p = 8
	assert.Equal(t, int64(8), total)

	// Reachable through an object too.
	var c counter
	got := m.RVar(object.ConstOf(cnt, &c), m.NameID("total"))
	assert.Equal(t, unsafe.Pointer(&total), got.Ptr())

	// Non-fixed fields have no static access.
	require.NoError(t, m.AddField(cnt, m.NameID("pad"), info.Field{Type: i64, Offset: unsafe.Offsetof(c.pad)}))
	assert.True(t, m.RStaticVar(cnt, m.NameID("pad")).IsNil())
}
