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

// Config carries read-only knobs for the manager and its collaborators.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// FullPkgPath controls whether names derived from Go types use the full
	// import path ("dirpx.dev/refl/x.T") or only its last element ("x.T").
	FullPkgPath bool

	// MaxUnwrap limits composite nesting (ptr/slice/array/chan/map/func)
	// when deriving a type name. Deeper types fall back to reflect's String.
	MaxUnwrap int

	// MallocLimit caps the bytes the default allocator keeps outstanding.
	// Zero means unlimited.
	MallocLimit uint64

	// MaxAlignment is the largest alignment AlignedMalloc accepts.
	MaxAlignment uint64

	// RecoverPanics converts a panic raised by an invoked callable into an
	// invocation failure instead of unwinding through the manager.
	RecoverPanics bool
}
