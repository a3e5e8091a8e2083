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

package translate

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/config"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	"github.com/vital-ai/vitalgraph-sparql/internal/graphreg"
	"github.com/vital-ai/vitalgraph-sparql/internal/termcache"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// fakeResolver assigns stable, deterministic ids to terms in the order
// they are first seen, simulating a backend-side term dictionary without
// a real database.
type fakeResolver struct {
	ids  map[sqlcore.CacheKey]sqlcore.TermID
	next sqlcore.TermID
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{ids: map[sqlcore.CacheKey]sqlcore.TermID{}, next: 1}
}

func (f *fakeResolver) idFor(key sqlcore.CacheKey) sqlcore.TermID {
	if id, ok := f.ids[key]; ok {
		return id
	}
	id := f.next
	f.next++
	f.ids[key] = id
	return id
}

func (f *fakeResolver) ResolveBatch(ctx context.Context, space string, keys []sqlcore.CacheKey) (map[sqlcore.CacheKey]sqlcore.TermID, error) {
	out := make(map[sqlcore.CacheKey]sqlcore.TermID, len(keys))
	for _, k := range keys {
		out[k] = f.idFor(k)
	}
	return out, nil
}

func (f *fakeResolver) InternBatch(ctx context.Context, space string, terms []sqlcore.Term) (map[sqlcore.CacheKey]sqlcore.TermID, error) {
	out := make(map[sqlcore.CacheKey]sqlcore.TermID, len(terms))
	for _, t := range terms {
		out[t.Key()] = f.idFor(t.Key())
	}
	return out, nil
}

func (f *fakeResolver) LookupBatch(ctx context.Context, space string, ids []sqlcore.TermID) (map[sqlcore.TermID]sqlcore.Term, error) {
	return nil, nil
}

// fakeGraphStore backs graphreg.Registry with an in-memory known-graph set.
type fakeGraphStore struct {
	known map[string]bool
}

func newFakeGraphStore(iris ...string) *fakeGraphStore {
	s := &fakeGraphStore{known: map[string]bool{}}
	for _, iri := range iris {
		s.known[iri] = true
	}
	return s
}

func (s *fakeGraphStore) KnownGraphs(ctx context.Context, space string) ([]sqlcore.GraphInfo, error) {
	out := make([]sqlcore.GraphInfo, 0, len(s.known))
	names := make([]string, 0, len(s.known))
	for iri := range s.known {
		names = append(names, iri)
	}
	sort.Strings(names)
	for _, iri := range names {
		out = append(out, sqlcore.GraphInfo{IRI: iri})
	}
	return out, nil
}

func (s *fakeGraphStore) RegisterGraphs(ctx context.Context, space string, iris []string) error {
	for _, iri := range iris {
		s.known[iri] = true
	}
	return nil
}

func (s *fakeGraphStore) UnregisterGraph(ctx context.Context, space, iri string) error {
	delete(s.known, iri)
	return nil
}

func newTestTranslator(graphIRIs ...string) *Translator {
	schema := sqlcore.SpaceSchema{
		QuadTable:      "quad",
		TermTable:      "term",
		GraphTable:     "graph_registry",
		GlobalGraphIRI: "urn:___GLOBAL",
	}
	cache, err := termcache.New(1000)
	if err != nil {
		panic(err)
	}
	return New("default", schema, newFakeResolver(), cache, graphreg.New(newFakeGraphStore(graphIRIs...)), config.Defaults(), logrus.NewEntry(logrus.StandardLogger()))
}

func newTestCtx() *sqlcore.Context {
	return sqlcore.NewContext(context.Background(), "default", 0)
}

func newGen() *alias.Generator { return alias.New() }

func v(name string) algebra.PatternTerm { return algebra.PatternTerm{Var: name} }

func b(term sqlcore.Term) algebra.PatternTerm { return algebra.PatternTerm{Bound: &term} }

func mustIntTerm(n int) sqlcore.Term {
	return sqlcore.TypedLiteral(itoa(int64(n)), "http://www.w3.org/2001/XMLSchema#integer")
}
