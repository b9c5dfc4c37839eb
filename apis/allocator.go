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

import (
	"reflect"
	"unsafe"
)

// Allocator provides the raw storage behind Manager.New and Manager.Delete.
// Implementations must be safe for concurrent use.
type Allocator interface {
	// Malloc returns size bytes of zeroed storage aligned for any scalar,
	// or nil if the request cannot be satisfied. The storage is not scanned
	// by the garbage collector.
	Malloc(size uint64) unsafe.Pointer
	// Free releases storage obtained from Malloc or MallocType.
	// It reports false for storage it does not recognise.
	Free(p unsafe.Pointer) bool
	// AlignedMalloc is Malloc with an explicit power-of-two alignment.
	AlignedMalloc(size, alignment uint64) unsafe.Pointer
	// AlignedFree releases storage obtained from AlignedMalloc.
	// It reports false for storage it does not recognise.
	AlignedFree(p unsafe.Pointer) bool
	// MallocType returns zeroed storage laid out as t, visible to the
	// garbage collector. Release it with Free.
	MallocType(t reflect.Type) unsafe.Pointer
}
