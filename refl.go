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

package refl

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mngr"
)

// Mngr returns the process-wide manager, building one with the default
// configuration on first use (or first use after Shutdown).
func Mngr() *mngr.Manager {
	if s := st.Load(); s != nil {
		return s.mgr
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Re-check under lock.
	if s := st.Load(); s != nil {
		return s.mgr
	}
	s := &state{cfg: config.DefaultConfig()}
	s.mgr = mngr.New(s.cfg)
	st.Store(s)
	return s.mgr
}

// Init replaces the process-wide manager with a fresh one built from cfg
// and returns it. Objects and ids obtained from the previous manager are
// meaningless to the new one.
func Init(cfg apis.Config, opts ...mngr.Option) *mngr.Manager {
	buildMu.Lock()
	defer buildMu.Unlock()

	s := &state{cfg: cfg, mgr: mngr.New(cfg, opts...)}
	st.Store(s)
	s.mgr.Logger().Debug("Initialized reflection manager.", slog.Bool("full_pkg_path", cfg.FullPkgPath))
	return s.mgr
}

// SetManager installs m as the process-wide manager. A nil m is ignored.
func SetManager(m *mngr.Manager) {
	if m == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(&state{cfg: m.Config(), mgr: m})
}

// Shutdown drops the process-wide manager. The next Mngr call builds a new
// one with the default configuration.
func Shutdown() {
	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(nil)
}

// Config returns the configuration of the process-wide manager.
func Config() apis.Config {
	if s := st.Load(); s != nil {
		return s.cfg
	}
	return Mngr().Config()
}

// buildMu serializes writers so a manager is never built twice for one
// snapshot.
var buildMu sync.Mutex

// st is the current snapshot, nil before first use and after Shutdown.
var st atomic.Pointer[state]

// state is an immutable snapshot published via st.Store. Writers create a
// new state and swap it in; a published state is never mutated.
type state struct {
	cfg apis.Config
	mgr *mngr.Manager
}
