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

// Package mngr implements the reflection manager: a registry of type,
// field, method, constructor, destructor, base and enumerator descriptors,
// and the algorithms that use them on type-erased objects.
//
// # Phases
//
// A Manager is filled during a registration phase (RegisterType, AddBase,
// AddField, AddMethod, AddConstructor, SetDestructor, AddEnumerator,
// SetRuntimeType) run from a single goroutine. After that the tables are
// treated as immutable and every query (casts, RWVar/RVar, Invoke*, New,
// ForEach*) may run concurrently without locks.
//
// # Search order
//
// Everything that looks through a hierarchy walks it depth-first: a type
// before its bases, bases in the order they were registered, each type
// once even when reachable through several paths. Name lookups return the
// first match in that order; ForEach* report every entry in that order.
//
// # Failures
//
// Missing fields, methods and cast paths yield a nil object.ObjectPtr or an
// InvokeResult with ErrNoMatchingMethod. A callable that fails while running
// yields an InvokeResult wrapping ErrInvocationFailed. Nothing aborts.
// Passing an object.ObjectPtr whose tag lies about its storage, or static
// downcasting an object that is not of the target type, is undefined.
package mngr
