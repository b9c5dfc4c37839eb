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
	"bytes"
	"log/slog"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/info"
)

type (
	top struct {
		T int64
	}
	left struct {
		top
		L int32
	}
	right struct {
		top
		R int32
	}
	// bottom reaches top through left and right.
	bottom struct {
		left
		right
		X int32
	}
)

type (
	shape struct {
		kind apis.TypeID
		Name string
	}
	circle struct {
		shape
		Radius float64
	}
	square struct {
		shape
		Side float64
	}
	unrelated struct {
		V int64
	}
)

// counter carries a method whose side effect tests can observe.
type counter struct {
	pad int64
	N   int32
}

func newTestManager(t *testing.T, opts ...config.Option) *Manager {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(config.NewConfig(opts...), WithLogger(log))
}

func register[T any](t *testing.T, m *Manager) apis.TypeID {
	t.Helper()
	rt := reflect.TypeFor[T]()
	id := m.TypeIDOf(rt)
	_, err := m.RegisterType(id, rt.Size(), uintptr(rt.Align()), rt)
	require.NoError(t, err)
	return id
}

func field(t *testing.T, m *Manager, owner apis.TypeID, name string, typ apis.TypeID, off uintptr) {
	t.Helper()
	require.NoError(t, m.AddField(owner, m.NameID(name), info.Field{Type: typ, Offset: off}))
}

func base(t *testing.T, m *Manager, derived, b apis.TypeID, off uintptr) {
	t.Helper()
	require.NoError(t, m.AddBase(derived, info.Base{ID: b, Offset: off}))
}

// diamond is the top/left/right/bottom fixture.
type diamond struct {
	m                        *Manager
	i32, i64                 apis.TypeID
	top, left, right, bottom apis.TypeID
}

func newDiamond(t *testing.T) diamond {
	t.Helper()
	m := newTestManager(t)
	d := diamond{m: m}
	d.i32 = register[int32](t, m)
	d.i64 = register[int64](t, m)
	d.top = register[top](t, m)
	d.left = register[left](t, m)
	d.right = register[right](t, m)
	d.bottom = register[bottom](t, m)

	var b bottom
	field(t, m, d.top, "T", d.i64, unsafe.Offsetof(b.left.top.T))
	field(t, m, d.left, "L", d.i32, unsafe.Offsetof(b.left.L))
	field(t, m, d.right, "R", d.i32, unsafe.Offsetof(b.right.R))
	field(t, m, d.bottom, "X", d.i32, unsafe.Offsetof(b.X))

	base(t, m, d.left, d.top, unsafe.Offsetof(b.left.top))
	base(t, m, d.right, d.top, unsafe.Offsetof(b.right.top))
	base(t, m, d.bottom, d.left, unsafe.Offsetof(b.left))
	base(t, m, d.bottom, d.right, unsafe.Offsetof(b.right))
	return d
}

// shapes is the shape/circle/square fixture with a runtime-identity probe.
type shapes struct {
	m                            *Manager
	shape, circle, square, other apis.TypeID
}

func newShapes(t *testing.T) shapes {
	t.Helper()
	m := newTestManager(t)
	s := shapes{m: m}
	s.shape = register[shape](t, m)
	s.circle = register[circle](t, m)
	s.square = register[square](t, m)
	s.other = register[unrelated](t, m)

	var c circle
	var q square
	base(t, m, s.circle, s.shape, unsafe.Offsetof(c.shape))
	base(t, m, s.square, s.shape, unsafe.Offsetof(q.shape))
	require.NoError(t, m.SetRuntimeType(s.shape, func(p unsafe.Pointer) apis.TypeID {
		return (*shape)(p).kind
	}))
	return s
}
