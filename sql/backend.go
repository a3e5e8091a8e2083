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

package sql

import "context"

// Row is one row of a result set, ordinally positioned to match the
// column list the caller requested from Execute.
type Row []interface{}

// RowIter is a lazily-consumed cursor over a result set. Execute returns
// one; the caller must call Close exactly once, including on early
// abandonment (spec §5's cooperative cancellation requirement).
type RowIter interface {
	// Next returns the next row, or (nil, io.EOF) when exhausted.
	Next(ctx context.Context) (Row, error)
	Close(ctx context.Context) error
}

// ExecResult is what a non-row-returning statement (INSERT/DELETE/DDL)
// reports back.
type ExecResult struct {
	RowsAffected int64
}

// Backend is the single capability this core requires of its host: execute
// a parameterized SQL string against a named space and get rows or an
// affected-row count back. Everything else (connection pooling, physical
// DDL, authentication) lives entirely on the other side of this interface
// per spec §1.
type Backend interface {
	// Space returns the concrete table/column names this space's quad,
	// term, and graph-registry tables use, plus the sentinel IRI for the
	// default graph. The translator never hard-codes a table name; every
	// SQL fragment it builds goes through this.
	Space(space string) (SpaceSchema, error)

	// Query runs a SELECT-shaped statement and returns a row cursor. args
	// are positional parameters; the backend is responsible for either
	// real parameter binding or safe quoting — this core never inlines
	// caller-supplied values into SQL text itself (bound term ids are
	// resolved through the term cache and inlined as integers, which is
	// safe; see sql/quoting.go for the one case where a literal string
	// must be embedded).
	Query(ctx context.Context, space, query string, args ...interface{}) (RowIter, error)

	// Exec runs a non-row-returning statement.
	Exec(ctx context.Context, space, query string, args ...interface{}) (ExecResult, error)
}

// SpaceSchema names the physical tables and columns this core assumes
// exist, per spec §6's "Persisted state layout".
type SpaceSchema struct {
	QuadTable    string
	TermTable    string
	GraphTable   string
	GlobalGraphIRI string
}

// QuadMutator is the batch physical-mutation capability the update
// dispatcher uses for ground data (INSERT/DELETE DATA, LOAD, COPY/MOVE/ADD).
// It is kept separate from Backend because a host may implement it with a
// bulk-loader path that bypasses ordinary SQL execution entirely.
type QuadMutator interface {
	InsertQuads(ctx context.Context, space string, quads []Quad) (int64, error)
	DeleteQuads(ctx context.Context, space string, quads []Quad) (int64, error)
	// DeleteQuadsMatching deletes every quad with the given graph id(s);
	// used by DROP/CLEAR GRAPH, which must not materialize the (possibly
	// enormous) set of quads client-side first.
	DeleteQuadsMatching(ctx context.Context, space string, graph TermID) (int64, error)
}

// TermResolver is the batch term-dictionary resolution capability (spec
// §4.2's "only the misses are sent to the database in a single ... query").
type TermResolver interface {
	// ResolveBatch looks up ids for the given (text, kind) pairs that are
	// known to exist. Keys absent from the result are not present in the
	// dictionary.
	ResolveBatch(ctx context.Context, space string, keys []CacheKey) (map[CacheKey]TermID, error)
	// InternBatch looks up-or-creates ids for the given terms, used by the
	// update path when inserting ground data that may introduce new terms.
	InternBatch(ctx context.Context, space string, terms []Term) (map[CacheKey]TermID, error)
	// LookupBatch resolves term ids back to their Terms, used by the
	// result marshaller to render bindings.
	LookupBatch(ctx context.Context, space string, ids []TermID) (map[TermID]Term, error)
}

// GraphStore is the graph-registry persistence capability (spec §4.7's
// batching: "query which of those already exist... upsert only the truly
// new ones").
type GraphStore interface {
	KnownGraphs(ctx context.Context, space string) ([]GraphInfo, error)
	RegisterGraphs(ctx context.Context, space string, iris []string) error
	UnregisterGraph(ctx context.Context, space string, iri string) error
}
