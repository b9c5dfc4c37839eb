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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strconv"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
)

// Canonical derives a stable registry name for t.
//
// Naming policy:
//   - named types -> "<pkg>.<Name>", where <pkg> is the full import path or
//     its last element depending on cfg.FullPkgPath; builtins keep their bare
//     name ("int", "string").
//   - ptr/slice/array/chan/map -> the composite spelled over canonical
//     element names ("*pkg.T", "[]pkg.T", "[4]pkg.T", "map[string]pkg.T").
//   - anything else (unnamed func/struct/interface) -> reflect's String.
//
// Composite spelling stops after cfg.MaxUnwrap levels and falls back to
// reflect's String for the remainder. If MaxUnwrap <= 0, DefaultMaxUnwrap
// is used.
func Canonical(t reflect.Type, cfg apis.Config) (string, error) {
	if t == nil {
		return "", ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	return canonical(t, cfg.FullPkgPath, maxUnwrap), nil
}

func canonical(t reflect.Type, full bool, depth int) string {
	if t.Name() != "" {
		p := t.PkgPath()
		if p == "" {
			return t.Name()
		}
		if !full {
			p = path.Base(p)
		}
		return p + "." + t.Name()
	}
	if depth <= 0 {
		return t.String()
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + canonical(t.Elem(), full, depth-1)
	case reflect.Slice:
		return "[]" + canonical(t.Elem(), full, depth-1)
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + canonical(t.Elem(), full, depth-1)
	case reflect.Chan:
		var prefix string
		switch t.ChanDir() {
		case reflect.RecvDir:
			prefix = "<-chan "
		case reflect.SendDir:
			prefix = "chan<- "
		default:
			prefix = "chan "
		}
		return prefix + canonical(t.Elem(), full, depth-1)
	case reflect.Map:
		return "map[" + canonical(t.Key(), full, depth-1) + "]" + canonical(t.Elem(), full, depth-1)
	default:
		return t.String()
	}
}

// Layout returns the size and alignment of t, or (0, 1) for nil.
func Layout(t reflect.Type) (size, align uintptr) {
	if t == nil {
		return 0, 1
	}
	return t.Size(), uintptr(t.Align())
}
