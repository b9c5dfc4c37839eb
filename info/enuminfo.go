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

	"dirpx.dev/refl/apis"
)

// ErrEnumeratorExists is returned when an enum already has an enumerator
// with the same name.
var ErrEnumeratorExists = errors.New("refl(info): enumerator already registered")

// Enumerator is one name/value pair of an enum.
type Enumerator struct {
	Name  apis.NameID
	Value int64
}

// EnumInfo maps enumerator names to values and back. Several names may share
// a value; the reverse lookup returns the first registered one.
type EnumInfo struct {
	// ID is the enum type.
	ID apis.TypeID

	entries []Enumerator
	byName  map[apis.NameID]int
	byValue map[int64]int
}

// NewEnumInfo constructs an empty table for id.
func NewEnumInfo(id apis.TypeID) *EnumInfo {
	return &EnumInfo{
		ID:      id,
		byName:  make(map[apis.NameID]int),
		byValue: make(map[int64]int),
	}
}

// Add appends an enumerator.
func (e *EnumInfo) Add(name apis.NameID, value int64) error {
	if !name.Valid() {
		return ErrInvalidName
	}
	if _, ok := e.byName[name]; ok {
		return ErrEnumeratorExists
	}
	e.byName[name] = len(e.entries)
	if _, ok := e.byValue[value]; !ok {
		e.byValue[value] = len(e.entries)
	}
	e.entries = append(e.entries, Enumerator{Name: name, Value: value})
	return nil
}

// Value returns the value of the enumerator called name.
func (e *EnumInfo) Value(name apis.NameID) (int64, bool) {
	i, ok := e.byName[name]
	if !ok {
		return 0, false
	}
	return e.entries[i].Value, true
}

// Name returns the first enumerator registered with value.
func (e *EnumInfo) Name(value int64) (apis.NameID, bool) {
	i, ok := e.byValue[value]
	if !ok {
		return apis.InvalidNameID, false
	}
	return e.entries[i].Name, true
}

// Enumerators returns the entries in registration order.
// The slice is owned by e and must not be modified.
func (e *EnumInfo) Enumerators() []Enumerator { return e.entries }

// Len returns the number of enumerators.
func (e *EnumInfo) Len() int { return len(e.entries) }
