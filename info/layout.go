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

package info

// Slot is the size and alignment of one packed value.
type Slot struct {
	Size  uintptr
	Align uintptr
}

// Pack lays slots out contiguously, each at the next offset aligned for it,
// the way the Go compiler lays out struct fields. It returns the offsets,
// the total size rounded up to the largest alignment, and that alignment.
func Pack(slots []Slot) (offsets []uintptr, size, align uintptr) {
	align = 1
	offsets = make([]uintptr, len(slots))
	var off uintptr
	for i, s := range slots {
		a := s.Align
		if a == 0 {
			a = 1
		}
		off = alignUp(off, a)
		offsets[i] = off
		off += s.Size
		if a > align {
			align = a
		}
	}
	return offsets, alignUp(off, align), align
}

func alignUp(v, a uintptr) uintptr {
	return (v + a - 1) &^ (a - 1)
}
