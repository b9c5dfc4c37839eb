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
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/info"
	"dirpx.dev/refl/object"
)

// Type is a resolved view of a registered type.
type Type struct {
	ID   apis.TypeID
	Name string
	// Info is nil when the id has no TypeInfo.
	Info *info.TypeInfo
}

// FieldRef is a named field as seen during a lookup or walk.
type FieldRef struct {
	ID    apis.NameID
	Name  string
	Field *info.Field
}

// MethodRef is a named method as seen during a lookup or walk.
type MethodRef struct {
	ID     apis.NameID
	Name   string
	Method *info.Method
}

// TypeFieldVar is one field value reached from a root object.
type TypeFieldVar struct {
	Type  Type
	Field FieldRef
	Var   object.ObjectPtr
}

// TypeFieldConstVar is the read-only counterpart of TypeFieldVar.
type TypeFieldConstVar struct {
	Type  Type
	Field FieldRef
	Var   object.ConstObjectPtr
}

// InvokeResult describes the outcome of an invocation.
type InvokeResult struct {
	// Success is true when a callable matched and returned without error.
	Success bool
	// ResultID is the return type of the matched callable.
	ResultID apis.TypeID
	// Err is ErrNoMatchingMethod when nothing matched, or wraps
	// ErrInvocationFailed when the callable failed.
	Err error
}
