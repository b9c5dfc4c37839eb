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

package registry

import (
	"sort"
	"sync"

	"golang.org/x/exp/constraints"
)

// table is an append-only string interner shared by the name and type
// registries. Reads are lock-free; writers serialize on mu.
type table[ID constraints.Unsigned] struct {
	// mu guards write-side consistency and the id counter.
	mu sync.Mutex
	// ids maps string to issued id.
	ids sync.Map // map[string]ID
	// strs maps issued id to string.
	strs sync.Map // map[ID]string
	// next is the last issued id.
	next ID
}

// intern returns the id of s, issuing a new one on first sight.
func (t *table[ID]) intern(s string) ID {
	if s == "" {
		return 0
	}
	// Fast read path without locking.
	if id, ok := t.ids.Load(s); ok {
		return id.(ID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check under lock in case another goroutine stored meanwhile.
	if id, ok := t.ids.Load(s); ok {
		return id.(ID)
	}
	t.next++
	id := t.next
	t.strs.Store(id, s)
	t.ids.Store(s, id)
	return id
}

func (t *table[ID]) lookup(s string) (ID, bool) {
	if id, ok := t.ids.Load(s); ok {
		return id.(ID), true
	}
	return 0, false
}

func (t *table[ID]) resolve(id ID) string {
	if s, ok := t.strs.Load(id); ok {
		return s.(string)
	}
	return ""
}

func (t *table[ID]) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.next)
}

// each calls fn for every entry in id order.
func (t *table[ID]) each(fn func(id ID, s string)) {
	type pair struct {
		id ID
		s  string
	}
	pairs := make([]pair, 0, t.count())
	t.strs.Range(func(key, value any) bool {
		pairs = append(pairs, pair{key.(ID), value.(string)})
		return true
	})
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })
	for _, p := range pairs {
		fn(p.id, p.s)
	}
}
