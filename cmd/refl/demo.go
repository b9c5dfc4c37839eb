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

package main

import (
	"math"
	"unsafe"

	"dirpx.dev/refl"
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/mngr"
)

// Color is the demo enum.
type Color int32

const (
	Red Color = iota
	Green
	Blue
)

// Named is the shared root of the diamond.
type Named struct {
	Name string
}

// Shape identifies its most-derived type through Kind.
type Shape struct {
	Named
	Kind apis.TypeID
}

// Paint reaches Named a second time.
type Paint struct {
	Named
	Color Color
}

// Circle derives from Shape.
type Circle struct {
	Shape
	Radius float64
}

// Badge derives from Circle and Paint.
type Badge struct {
	Circle
	Paint
	Label string
}

func (n Named) Hello() string { return "hello, " + n.Name }

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c *Circle) Scale(f float64) { c.Radius *= f }

// registerDemo fills m with the demo types.
func registerDemo(m *mngr.Manager) error {
	steps := []func() error{
		func() error { _, err := refl.RegisterType[string](m); return err },
		func() error { _, err := refl.RegisterType[float64](m); return err },
		func() error { _, err := refl.RegisterType[apis.TypeID](m); return err },
		func() error { _, err := refl.RegisterType[Color](m); return err },
		func() error { return refl.AddEnumerator(m, "Red", Red) },
		func() error { return refl.AddEnumerator(m, "Green", Green) },
		func() error { return refl.AddEnumerator(m, "Blue", Blue) },

		func() error { _, err := refl.RegisterType[Named](m); return err },
		func() error { _, err := refl.RegisterType[Shape](m); return err },
		func() error { _, err := refl.RegisterType[Paint](m); return err },
		func() error { _, err := refl.RegisterType[Circle](m); return err },
		func() error { _, err := refl.RegisterType[Badge](m); return err },

		func() error { return refl.AddBase(m, func(s *Shape) *Named { return &s.Named }) },
		func() error { return refl.AddBase(m, func(p *Paint) *Named { return &p.Named }) },
		func() error { return refl.AddBase(m, func(c *Circle) *Shape { return &c.Shape }) },
		func() error { return refl.AddBase(m, func(b *Badge) *Circle { return &b.Circle }) },
		func() error { return refl.AddBase(m, func(b *Badge) *Paint { return &b.Paint }) },

		func() error { return refl.AddStructFields[Named](m) },
		func() error { return refl.AddStructFields[Shape](m) },
		func() error { return refl.AddStructFields[Paint](m) },
		func() error { return refl.AddStructFields[Circle](m) },
		func() error { return refl.AddStructFields[Badge](m) },

		func() error { return refl.AddConstMethod[Named](m, "Hello", Named.Hello) },
		func() error { return refl.AddConstMethod[Circle](m, "Area", Circle.Area) },
		func() error { return refl.AddMethod[Circle](m, "Scale", (*Circle).Scale) },
		func() error { return refl.AddFunc(m, "hypot", math.Hypot) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	circleID, badgeID := refl.TypeIDOf[Circle](m), refl.TypeIDOf[Badge](m)
	if err := refl.AddConstructor[Circle](m, func(r float64) Circle {
		return Circle{Shape: Shape{Kind: circleID}, Radius: r}
	}); err != nil {
		return err
	}
	if err := refl.AddConstructor[Badge](m, func(label string) Badge {
		b := Badge{Label: label}
		b.Kind = badgeID
		return b
	}); err != nil {
		return err
	}
	return m.SetRuntimeType(refl.TypeIDOf[Shape](m), func(p unsafe.Pointer) apis.TypeID {
		return (*Shape)(p).Kind
	})
}
