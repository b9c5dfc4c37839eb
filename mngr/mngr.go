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
	"errors"
	"log/slog"
	"reflect"
	"sort"

	"golang.org/x/exp/maps"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/builder"
	"dirpx.dev/refl/info"
)

var (
	// ErrUnknownType is returned when a TypeID has no TypeInfo (or, for
	// RegisterType, was never issued by the TypeRegistry).
	ErrUnknownType = errors.New("refl(mngr): unknown type")
	// ErrTypeExists is returned when a TypeID is registered twice.
	ErrTypeExists = errors.New("refl(mngr): type already registered")
	// ErrBaseCycle is returned when a base relation would close a cycle.
	ErrBaseCycle = errors.New("refl(mngr): base relation would form a cycle")
	// ErrInvalidType is returned for an invalid declared type.
	ErrInvalidType = errors.New("refl(mngr): invalid type id")
	// ErrNilStorage is returned when fixed-value storage is missing.
	ErrNilStorage = errors.New("refl(mngr): nil storage")
	// ErrNoMatchingMethod reports that no callable matched a request.
	ErrNoMatchingMethod = errors.New("refl(mngr): no matching method")
	// ErrNotConstructible reports that no constructor matched a request.
	ErrNotConstructible = errors.New("refl(mngr): no matching constructor")
	// ErrNotDestructible reports that a type has no destructor.
	ErrNotDestructible = errors.New("refl(mngr): no destructor")
	// ErrNilObject is returned when a nil object is passed.
	ErrNilObject = errors.New("refl(mngr): nil object")
	// ErrInvocationFailed wraps failures raised by a matched callable.
	ErrInvocationFailed = errors.New("refl(mngr): invocation failed")
	// ErrPanicked wraps a panic recovered from a callable.
	ErrPanicked = errors.New("refl(mngr): callable panicked")
)

// Manager is the reflection manager. Construct it with New.
type Manager struct {
	cfg   apis.Config
	names apis.NameRegistry
	types apis.TypeRegistry
	alloc apis.Allocator
	res   apis.Resolver
	log   *slog.Logger

	typeinfos map[apis.TypeID]*info.TypeInfo
	enuminfos map[apis.TypeID]*info.EnumInfo
}

// Option configures a Manager during New.
type Option func(*options)

type options struct {
	bld apis.Builder
	log *slog.Logger
}

// WithBuilder replaces the default collaborator builder.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.bld = b
		}
	}
}

// WithLogger sets the logger. Registration is logged at Debug level, as
// are invocation and allocation failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New constructs an isolated Manager. The global pseudo-type is registered
// up front so free functions can be added immediately.
func New(cfg apis.Config, opts ...Option) *Manager {
	o := options{bld: builder.New(), log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		cfg:       cfg,
		names:     o.bld.BuildNames(cfg),
		types:     o.bld.BuildTypes(cfg),
		alloc:     o.bld.BuildAllocator(cfg),
		log:       o.log,
		typeinfos: make(map[apis.TypeID]*info.TypeInfo),
		enuminfos: make(map[apis.TypeID]*info.EnumInfo),
	}
	m.res = o.bld.BuildResolver(cfg, m.types)

	g := m.types.Global()
	m.typeinfos[g] = info.NewTypeInfo(g, 0, 1, nil)
	return m
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() apis.Config { return m.cfg }

// Names returns the name registry.
func (m *Manager) Names() apis.NameRegistry { return m.names }

// Types returns the type registry.
func (m *Manager) Types() apis.TypeRegistry { return m.types }

// Allocator returns the storage provider behind New and Delete.
func (m *Manager) Allocator() apis.Allocator { return m.alloc }

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.log }

// Global returns the TypeID hosting free functions.
func (m *Manager) Global() apis.TypeID { return m.types.Global() }

// NameID interns s.
func (m *Manager) NameID(s string) apis.NameID { return m.names.Intern(s) }

// TypeIDOf returns the TypeID for a Go type: the bound id if t was
// registered, otherwise the id of the name the resolver derives for t.
func (m *Manager) TypeIDOf(t reflect.Type) apis.TypeID {
	if t == nil {
		return apis.InvalidTypeID
	}
	if id, ok := m.types.Bound(t); ok {
		return id
	}
	return m.types.Intern(m.res.ResolveType(t, m.cfg))
}

// TypeInfo returns the descriptor table of id.
func (m *Manager) TypeInfo(id apis.TypeID) (*info.TypeInfo, bool) {
	ti, ok := m.typeinfos[id]
	return ti, ok
}

// EnumInfo returns the enumerator table of id.
func (m *Manager) EnumInfo(id apis.TypeID) (*info.EnumInfo, bool) {
	ei, ok := m.enuminfos[id]
	return ei, ok
}

// TypeIDs returns every registered TypeID in ascending order.
func (m *Manager) TypeIDs() []apis.TypeID {
	ids := maps.Keys(m.typeinfos)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// typeOf builds the Type view of id.
func (m *Manager) typeOf(id apis.TypeID, ti *info.TypeInfo) Type {
	return Type{ID: id, Name: m.types.Resolve(id), Info: ti}
}
