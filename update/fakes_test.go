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

package update

import (
	"context"
	"io"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

type fakeBackend struct {
	schema sql.SpaceSchema
	rows   []sql.Row
}

func (b *fakeBackend) Space(space string) (sql.SpaceSchema, error) { return b.schema, nil }

func (b *fakeBackend) Query(ctx context.Context, space, query string, args ...interface{}) (sql.RowIter, error) {
	return &fakeRowIter{rows: b.rows}, nil
}

func (b *fakeBackend) Exec(ctx context.Context, space, query string, args ...interface{}) (sql.ExecResult, error) {
	return sql.ExecResult{}, nil
}

type fakeRowIter struct {
	rows []sql.Row
	pos  int
}

func (f *fakeRowIter) Next(ctx context.Context) (sql.Row, error) {
	if f.pos >= len(f.rows) {
		return nil, io.EOF
	}
	r := f.rows[f.pos]
	f.pos++
	return r, nil
}

func (f *fakeRowIter) Close(ctx context.Context) error { return nil }

type fakeMutator struct {
	inserted       [][]sql.Quad
	deleted        [][]sql.Quad
	deletedGraphs  []sql.TermID
}

func (m *fakeMutator) InsertQuads(ctx context.Context, space string, quads []sql.Quad) (int64, error) {
	m.inserted = append(m.inserted, quads)
	return int64(len(quads)), nil
}

func (m *fakeMutator) DeleteQuads(ctx context.Context, space string, quads []sql.Quad) (int64, error) {
	m.deleted = append(m.deleted, quads)
	return int64(len(quads)), nil
}

func (m *fakeMutator) DeleteQuadsMatching(ctx context.Context, space string, graph sql.TermID) (int64, error) {
	m.deletedGraphs = append(m.deletedGraphs, graph)
	return 0, nil
}

// fakeResolver interns terms deterministically: the nth distinct term
// ever seen gets id n+1, so tests can predict ids.
type fakeResolver struct {
	byKey map[sql.CacheKey]sql.TermID
	byID  map[sql.TermID]sql.Term
	next  int64
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{byKey: map[sql.CacheKey]sql.TermID{}, byID: map[sql.TermID]sql.Term{}}
}

func (r *fakeResolver) ResolveBatch(ctx context.Context, space string, keys []sql.CacheKey) (map[sql.CacheKey]sql.TermID, error) {
	out := map[sql.CacheKey]sql.TermID{}
	for _, k := range keys {
		if id, ok := r.byKey[k]; ok {
			out[k] = id
		}
	}
	return out, nil
}

func (r *fakeResolver) InternBatch(ctx context.Context, space string, terms []sql.Term) (map[sql.CacheKey]sql.TermID, error) {
	out := map[sql.CacheKey]sql.TermID{}
	for _, t := range terms {
		k := t.Key()
		id, ok := r.byKey[k]
		if !ok {
			r.next++
			id = sql.TermID(r.next)
			r.byKey[k] = id
			r.byID[id] = t
		}
		out[k] = id
	}
	return out, nil
}

func (r *fakeResolver) LookupBatch(ctx context.Context, space string, ids []sql.TermID) (map[sql.TermID]sql.Term, error) {
	out := map[sql.TermID]sql.Term{}
	for _, id := range ids {
		if t, ok := r.byID[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

type fakeGraphStore struct {
	known []sql.GraphInfo
}

func (g *fakeGraphStore) KnownGraphs(ctx context.Context, space string) ([]sql.GraphInfo, error) {
	return g.known, nil
}

func (g *fakeGraphStore) RegisterGraphs(ctx context.Context, space string, iris []string) error {
	for _, iri := range iris {
		g.known = append(g.known, sql.GraphInfo{IRI: iri})
	}
	return nil
}

func (g *fakeGraphStore) UnregisterGraph(ctx context.Context, space string, iri string) error {
	out := g.known[:0]
	for _, gi := range g.known {
		if gi.IRI != iri {
			out = append(out, gi)
		}
	}
	g.known = out
	return nil
}
