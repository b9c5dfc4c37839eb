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
	"fmt"

	"dirpx.dev/refl/apis"
)

// Description is a printable snapshot of one TypeInfo. It lists only what
// the type itself declares; bases are named, not expanded.
type Description struct {
	ID           apis.TypeID             `yaml:"id"`
	Name         string                  `yaml:"name"`
	Size         uintptr                 `yaml:"size"`
	Align        uintptr                 `yaml:"align"`
	Bases        []BaseDescription       `yaml:"bases,omitempty"`
	Fields       []FieldDescription      `yaml:"fields,omitempty"`
	Methods      []MethodDescription     `yaml:"methods,omitempty"`
	Constructors [][]string              `yaml:"constructors,omitempty"`
	Destructible bool                    `yaml:"destructible"`
	Dynamic      bool                    `yaml:"dynamic"`
	Enumerators  []EnumeratorDescription `yaml:"enumerators,omitempty"`
}

// BaseDescription describes one direct base.
type BaseDescription struct {
	Name    string  `yaml:"name"`
	Offset  uintptr `yaml:"offset"`
	Dynamic bool    `yaml:"dynamic,omitempty"`
}

// FieldDescription describes one declared field.
type FieldDescription struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Offset uintptr `yaml:"offset"`
	Fixed  bool    `yaml:"fixed,omitempty"`
	Const  bool    `yaml:"const,omitempty"`
}

// MethodDescription describes one declared overload.
type MethodDescription struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Params []string `yaml:"params,omitempty"`
	Result string   `yaml:"result,omitempty"`
}

// EnumeratorDescription describes one enumerator.
type EnumeratorDescription struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Describe returns a snapshot of the TypeInfo of typeID.
func (m *Manager) Describe(typeID apis.TypeID) (Description, error) {
	ti, err := m.lookup(typeID)
	if err != nil {
		return Description{}, err
	}

	d := Description{
		ID:           typeID,
		Name:         m.types.Resolve(typeID),
		Size:         ti.Size,
		Align:        ti.Align,
		Destructible: m.IsDestructible(typeID),
		Dynamic:      ti.RuntimeType != nil,
	}
	for _, b := range ti.Bases() {
		d.Bases = append(d.Bases, BaseDescription{Name: m.types.Resolve(b.ID), Offset: b.Offset, Dynamic: b.IsDynamic()})
	}
	for _, f := range ti.Fields() {
		d.Fields = append(d.Fields, FieldDescription{
			Name:   m.names.Resolve(f.Name),
			Type:   m.types.Resolve(f.Type),
			Offset: f.Offset,
			Fixed:  f.IsFixed(),
			Const:  f.Const,
		})
	}
	for _, f := range ti.Methods() {
		md := MethodDescription{
			Name:   m.names.Resolve(f.Name),
			Kind:   f.Kind.String(),
			Params: m.typeNames(f.Params),
		}
		if f.Result.Valid() {
			md.Result = m.types.Resolve(f.Result)
		}
		d.Methods = append(d.Methods, md)
	}
	for _, c := range ti.Constructors() {
		d.Constructors = append(d.Constructors, m.typeNames(c.Params))
	}
	if ei, ok := m.enuminfos[typeID]; ok {
		for _, e := range ei.Enumerators() {
			d.Enumerators = append(d.Enumerators, EnumeratorDescription{Name: m.names.Resolve(e.Name), Value: e.Value})
		}
	}
	return d, nil
}

// String renders md as a signature.
func (md MethodDescription) String() string {
	s := fmt.Sprintf("%s %s(", md.Kind, md.Name)
	for i, p := range md.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	s += ")"
	if md.Result != "" {
		s += " " + md.Result
	}
	return s
}

func (m *Manager) typeNames(ids []apis.TypeID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = m.types.Resolve(id)
	}
	return out
}
