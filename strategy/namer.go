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

package strategy

import (
	"reflect"

	"dirpx.dev/refl/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.TypeNamer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy lets a type pick its own name: if T (or *T) implements
// apis.TypeNamer, return ReflTypeName() of the zero value and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

var namerType = reflect.TypeOf((*apis.TypeNamer)(nil)).Elem()

// TryResolveType checks if t implements apis.TypeNamer.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return "", false
	}
	var v reflect.Value
	switch {
	case t.Implements(namerType):
		v = reflect.Zero(t)
		// A nil pointer receiver may not be callable.
		if t.Kind() == reflect.Ptr {
			v = reflect.New(t.Elem())
		}
	case reflect.PointerTo(t).Implements(namerType):
		v = reflect.New(t)
	default:
		return "", false
	}
	name := v.Interface().(apis.TypeNamer).ReflTypeName()
	if name == "" {
		return "", false
	}
	return name, true
}
