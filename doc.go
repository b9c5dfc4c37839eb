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

// Package refl is a runtime reflection manager.
//
// refl lets code discover and manipulate types, fields, methods,
// enumerators and inheritance relations it has no compile-time knowledge
// of. Every type is identified by an apis.TypeID and every name by an
// apis.NameID; objects travel as type-erased object.ObjectPtr values
// (a TypeID plus an address).
//
// # Design
//
// The work is split into small packages:
//
//   - apis: ids and the contracts of the collaborators (registries,
//     allocator, type-name resolver, builder, config).
//
//   - registry: sync.Map backed NameRegistry and TypeRegistry.
//
//   - info: the descriptor tables (TypeInfo, Field, Method, Base,
//     EnumInfo) and the argument layout rules.
//
//   - object: ObjectPtr and ConstObjectPtr.
//
//   - mngr: the Manager, which owns the tables and implements casts,
//     field access, invocation, construction and hierarchy walks.
//
//   - alloc, resolver, strategy, builder, config: the default allocator,
//     the type-name strategy chain, the factory wiring them together and
//     the functional options for apis.Config.
//
// This package holds the process-wide Manager and generic helpers that
// derive descriptors from Go types:
//
//	m := refl.Mngr()
//	circleID, _ := refl.RegisterType[Circle](m)
//	_ = refl.AddBase(m, func(c *Circle) *Shape { return &c.Shape })
//	_ = refl.AddField(m, "Radius", func(c *Circle) *float64 { return &c.Radius })
//	_ = refl.AddConstMethod[Circle](m, "Area", Circle.Area)
//
//	obj := refl.Of(m, &circle)
//	area, err := refl.InvokeAs[float64](m, obj, "Area")
//
// # Concurrency
//
// Registration is expected to happen from one goroutine before use. After
// that every query may run concurrently. Mngr, Init, SetManager and
// Shutdown publish immutable snapshots atomically, so readers never lock.
package refl
