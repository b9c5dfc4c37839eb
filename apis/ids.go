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

package apis

// TypeID is the stable identity of a registered type. The zero value is
// invalid and never issued.
type TypeID uint32

// NameID is the stable identity of an interned name (field, method,
// enumerator). The zero value is invalid and never issued.
type NameID uint32

// InvalidTypeID is the zero TypeID.
const InvalidTypeID TypeID = 0

// InvalidNameID is the zero NameID.
const InvalidNameID NameID = 0

// GlobalTypeName is the reserved name of the pseudo-type that hosts free
// functions. Every TypeRegistry interns it first.
const GlobalTypeName = "::global"

// Valid reports whether id was issued by a registry.
func (id TypeID) Valid() bool { return id != InvalidTypeID }

// Valid reports whether id was issued by a registry.
func (id NameID) Valid() bool { return id != InvalidNameID }
