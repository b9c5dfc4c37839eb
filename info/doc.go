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

// Package info holds the per-type descriptor tables the manager resolves
// against: fields, methods, constructors, destructor and direct bases in
// TypeInfo, and enumerator tables in EnumInfo.
//
// Every table keeps registration order. Lookups that can match more than
// one entry always return the first registered one, which is what makes
// the manager's search order deterministic.
//
// Tables are filled during a single-goroutine registration phase and are
// read without locks afterwards.
package info
