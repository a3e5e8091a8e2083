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

// Package engine is the orchestrator of spec §2's pipeline: it takes an
// already-parsed SPARQL algebra tree (the parser itself is an external
// collaborator, out of scope per spec §1) tagged with its query form,
// and either runs it through the pattern translator and result
// marshaller, or, for an update request, through the update dispatcher.
package engine

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vital-ai/vitalgraph-sparql/config"
	"github.com/vital-ai/vitalgraph-sparql/internal/graphreg"
	"github.com/vital-ai/vitalgraph-sparql/internal/termcache"
	"github.com/vital-ai/vitalgraph-sparql/load"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
	"github.com/vital-ai/vitalgraph-sparql/translate"
	"github.com/vital-ai/vitalgraph-sparql/update"
)

// Engine is the single entry point a host embeds: one per backend
// connection, shared across every space it serves. It owns the state that
// outlives one query (the per-space term caches and the graph registry);
// a Translator is built fresh for each request.
type Engine struct {
	Backend  sqlcore.Backend
	Mutator  sqlcore.QuadMutator
	Resolver sqlcore.TermResolver
	Store    sqlcore.GraphStore

	Config config.Options
	Log    *logrus.Entry

	graphs *graphreg.Registry
	loader *load.Loader

	cacheMu sync.Mutex
	caches  map[string]*termcache.Cache
}

// New builds an Engine. cfg should come from config.Load or
// config.Defaults; a zero config.Options is not valid (it has no
// default graph IRI, term cache capacity, etc.).
func New(backend sqlcore.Backend, mutator sqlcore.QuadMutator, resolver sqlcore.TermResolver, store sqlcore.GraphStore, cfg config.Options, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		Backend:  backend,
		Mutator:  mutator,
		Resolver: resolver,
		Store:    store,
		Config:   cfg,
		Log:      log,
		graphs:   graphreg.New(store),
		loader:   load.NewLoader(cfg),
		caches:   map[string]*termcache.Cache{},
	}
}

// cacheFor returns the persistent term cache for one space, building it
// on first use (spec §3: the term cache outlives any one query, scoped
// per space exactly like the graph registry).
func (e *Engine) cacheFor(space string) (*termcache.Cache, error) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if c, ok := e.caches[space]; ok {
		return c, nil
	}
	c, err := termcache.New(e.Config.TermCacheCapacity)
	if err != nil {
		return nil, err
	}
	e.caches[space] = c
	return c, nil
}

// translator builds a Translator for one space, wired to that space's
// persistent term cache (spec §3), so building one per request is cheap;
// only the term cache and graph registry need to persist across
// requests, and both are owned by the Engine, not the Translator.
func (e *Engine) translator(space string, schema sqlcore.SpaceSchema) (*translate.Translator, error) {
	cache, err := e.cacheFor(space)
	if err != nil {
		return nil, err
	}
	return translate.New(space, schema, e.Resolver, cache, e.graphs, e.Config, e.Log), nil
}

// dispatcher builds an update.Dispatcher for one space, sharing the
// Engine's graph registry and LOAD helper.
func (e *Engine) dispatcher(space string, schema sqlcore.SpaceSchema, tr *translate.Translator) *update.Dispatcher {
	return update.New(tr, e.Backend, e.Mutator, e.Resolver, e.graphs, e.loader, schema, space, e.Log)
}
