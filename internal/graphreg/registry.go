// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graphreg is the write-through graph-registry cache of spec §3/
// §4.7: a lazily-loaded, per-space set of known named-graph IRIs. Unlike
// internal/termcache, this is deliberately not an eviction cache — see
// DESIGN.md for why an LRU or TTL cache would be semantically wrong here
// (it could make a real graph appear unknown).
package graphreg

import (
	"context"
	"sync"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

// Registry is a process-wide, per-space cache of known named graphs.
type Registry struct {
	store sql.GraphStore

	mu     sync.RWMutex
	spaces map[string]*spaceState
}

type spaceState struct {
	mu      sync.Mutex
	loaded  bool
	known   map[string]sql.GraphInfo
}

// New builds a Registry backed by store for persistence.
func New(store sql.GraphStore) *Registry {
	return &Registry{store: store, spaces: map[string]*spaceState{}}
}

func (r *Registry) space(space string) *spaceState {
	r.mu.RLock()
	s, ok := r.spaces[space]
	r.mu.RUnlock()
	if ok {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.spaces[space]; ok {
		return s
	}
	s = &spaceState{}
	r.spaces[space] = s
	return s
}

// ensureLoaded loads the persisted registry for a space on first use
// (spec §3's "refreshed on first use per space"), never holding the space
// lock across the backend I/O call itself (spec §5: "a strategy that does
// not hold a lock across any I/O").
func (r *Registry) ensureLoaded(ctx context.Context, space string) error {
	s := r.space(space)
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	infos, err := r.store.KnownGraphs(ctx, space)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	s.known = make(map[string]sql.GraphInfo, len(infos))
	for _, gi := range infos {
		s.known[gi.IRI] = gi
	}
	s.loaded = true
	return nil
}

// Exists reports whether iri is a known named graph in space, per spec §3's
// rule: "A named graph exists in the registry iff at least one quad
// references it or it was created explicitly". The global graph is never
// registered and always exists; callers check that separately (it is a
// config-level constant, not registry state).
func (r *Registry) Exists(ctx context.Context, space, iri string) (bool, error) {
	if err := r.ensureLoaded(ctx, space); err != nil {
		return false, err
	}
	s := r.space(space)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.known[iri]
	return ok, nil
}

// EnsureRegistered upserts iris into both the persisted registry and the
// in-memory cache, batched per spec §4.7: only IRIs not already known (by
// cache) are sent to the backend.
func (r *Registry) EnsureRegistered(ctx context.Context, space string, iris []string) error {
	if err := r.ensureLoaded(ctx, space); err != nil {
		return err
	}
	s := r.space(space)

	s.mu.Lock()
	var toRegister []string
	for _, iri := range iris {
		if _, ok := s.known[iri]; !ok {
			toRegister = append(toRegister, iri)
		}
	}
	s.mu.Unlock()

	if len(toRegister) == 0 {
		return nil
	}
	if err := r.store.RegisterGraphs(ctx, space, toRegister); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iri := range toRegister {
		s.known[iri] = sql.GraphInfo{IRI: iri}
	}
	return nil
}

// Unregister removes iri from both the persisted registry and the cache
// (DROP GRAPH).
func (r *Registry) Unregister(ctx context.Context, space, iri string) error {
	if err := r.ensureLoaded(ctx, space); err != nil {
		return err
	}
	if err := r.store.UnregisterGraph(ctx, space, iri); err != nil {
		return err
	}
	s := r.space(space)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.known, iri)
	return nil
}
