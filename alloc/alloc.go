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

package alloc

import (
	"math"
	"reflect"
	"sync"
	"unsafe"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
)

// New constructs the default allocator. It hands out Go heap memory and
// remembers every live block, which is what lets Free reject addresses it
// did not produce. Only MallocLimit and MaxAlignment are used here.
func New(cfg apis.Config) apis.Allocator {
	maxAlign := cfg.MaxAlignment
	if maxAlign == 0 {
		maxAlign = config.DefaultMaxAlignment
	}
	return &allocator{
		limit:    cfg.MallocLimit,
		maxAlign: maxAlign,
		raw:      make(map[uintptr]block),
		aligned:  make(map[uintptr]block),
	}
}

// block keeps a live allocation reachable until it is freed.
type block struct {
	keep any
	size uint64
}

// allocator is the default apis.Allocator.
type allocator struct {
	limit    uint64
	maxAlign uint64

	// mu guards the block tables and the usage counter.
	mu      sync.Mutex
	used    uint64
	raw     map[uintptr]block
	aligned map[uintptr]block
}

// Ensure allocator implements apis.Allocator.
var _ apis.Allocator = (*allocator)(nil)

const wordSize = unsafe.Sizeof(uint64(0))

// maxAlloc bounds a single request below what the runtime accepts for one
// slice, so oversized requests fail with nil instead of panicking in make.
const maxAlloc = min(1<<47, math.MaxInt)

// Malloc returns zeroed, word-aligned storage. A zero size still yields a
// distinct one-word block.
func (a *allocator) Malloc(size uint64) unsafe.Pointer {
	if size > maxAlloc {
		return nil
	}
	words := (size + uint64(wordSize) - 1) / uint64(wordSize)
	if words == 0 {
		words = 1
	}
	if !a.reserve(size) {
		return nil
	}
	buf := make([]uint64, words)
	p := unsafe.Pointer(&buf[0])
	a.track(a.raw, p, block{keep: buf, size: size})
	return p
}

// Free releases storage obtained from Malloc or MallocType.
func (a *allocator) Free(p unsafe.Pointer) bool {
	return a.release(a.raw, p)
}

// AlignedMalloc returns zeroed storage aligned to alignment, which must be
// a power of two not above MaxAlignment.
func (a *allocator) AlignedMalloc(size, alignment uint64) unsafe.Pointer {
	if alignment == 0 || alignment&(alignment-1) != 0 || alignment > a.maxAlign {
		return nil
	}
	if size == 0 {
		size = 1
	}
	if size > maxAlloc-alignment+1 {
		return nil
	}
	if !a.reserve(size) {
		return nil
	}
	buf := make([]byte, size+alignment-1)
	base := unsafe.Pointer(&buf[0])
	pad := (alignment - uint64(uintptr(base))%alignment) % alignment
	p := unsafe.Add(base, pad)
	a.track(a.aligned, p, block{keep: buf, size: size})
	return p
}

// AlignedFree releases storage obtained from AlignedMalloc.
func (a *allocator) AlignedFree(p unsafe.Pointer) bool {
	return a.release(a.aligned, p)
}

// MallocType returns zeroed storage for one t, laid out by the Go runtime so
// the garbage collector sees any pointers stored in it.
func (a *allocator) MallocType(t reflect.Type) unsafe.Pointer {
	if t == nil {
		return nil
	}
	size := uint64(t.Size())
	if size == 0 {
		// Zero-size values share one address; hand out a private word instead.
		return a.Malloc(0)
	}
	if size > maxAlloc {
		return nil
	}
	if !a.reserve(size) {
		return nil
	}
	v := reflect.New(t)
	p := v.UnsafePointer()
	a.track(a.raw, p, block{keep: v.Interface(), size: size})
	return p
}

// reserve accounts size against the limit. Without a limit it only guards
// the counter itself.
func (a *allocator) reserve(size uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	limit := a.limit
	if limit == 0 {
		limit = math.MaxUint64
	}
	if size > limit || a.used > limit-size {
		return false
	}
	a.used += size
	return true
}

func (a *allocator) track(tbl map[uintptr]block, p unsafe.Pointer, b block) {
	a.mu.Lock()
	defer a.mu.Unlock()
	tbl[uintptr(p)] = b
}

func (a *allocator) release(tbl map[uintptr]block, p unsafe.Pointer) bool {
	if p == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := tbl[uintptr(p)]
	if !ok {
		return false
	}
	delete(tbl, uintptr(p))
	a.used -= b.size
	return true
}
