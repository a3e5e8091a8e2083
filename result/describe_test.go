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

package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

type fakeDescribeBackend struct {
	rows []sqlcore.Row
}

func (b *fakeDescribeBackend) Space(space string) (sqlcore.SpaceSchema, error) {
	return sqlcore.SpaceSchema{QuadTable: "quad"}, nil
}

func (b *fakeDescribeBackend) Query(ctx context.Context, space, query string, args ...interface{}) (sqlcore.RowIter, error) {
	return &fakeRowIter{rows: b.rows}, nil
}

func (b *fakeDescribeBackend) Exec(ctx context.Context, space, query string, args ...interface{}) (sqlcore.ExecResult, error) {
	return sqlcore.ExecResult{}, nil
}

type fakeDescribeResolver struct {
	terms map[sqlcore.TermID]sqlcore.Term
}

func (r *fakeDescribeResolver) ResolveBatch(ctx context.Context, space string, keys []sqlcore.CacheKey) (map[sqlcore.CacheKey]sqlcore.TermID, error) {
	return nil, nil
}

func (r *fakeDescribeResolver) InternBatch(ctx context.Context, space string, terms []sqlcore.Term) (map[sqlcore.CacheKey]sqlcore.TermID, error) {
	return nil, nil
}

func (r *fakeDescribeResolver) LookupBatch(ctx context.Context, space string, ids []sqlcore.TermID) (map[sqlcore.TermID]sqlcore.Term, error) {
	out := make(map[sqlcore.TermID]sqlcore.Term, len(ids))
	for _, id := range ids {
		if term, ok := r.terms[id]; ok {
			out[id] = term
		}
	}
	return out, nil
}

func TestDescribe_EmitsFlatTripleList(t *testing.T) {
	backend := &fakeDescribeBackend{rows: []sqlcore.Row{
		{int64(1), int64(2), int64(3)},
	}}
	resolver := &fakeDescribeResolver{terms: map[sqlcore.TermID]sqlcore.Term{
		1: sqlcore.IRI("http://ex/a"),
		2: sqlcore.IRI("http://ex/knows"),
		3: sqlcore.IRI("http://ex/b"),
	}}
	ctx := sqlcore.NewContext(context.Background(), "default", 0)

	triples, err := Describe(ctx, backend, sqlcore.SpaceSchema{QuadTable: "quad"}, resolver, []sqlcore.TermID{1})
	require.NoError(t, err)
	require.Len(t, triples, 1)
	require.Equal(t, sqlcore.IRI("http://ex/a"), triples[0].Subject)
	require.Equal(t, sqlcore.IRI("http://ex/knows"), triples[0].Predicate)
	require.Equal(t, sqlcore.IRI("http://ex/b"), triples[0].Object)
}

func TestDescribe_EmptySubjectsReturnsNil(t *testing.T) {
	ctx := sqlcore.NewContext(context.Background(), "default", 0)
	triples, err := Describe(ctx, &fakeDescribeBackend{}, sqlcore.SpaceSchema{}, &fakeDescribeResolver{}, nil)
	require.NoError(t, err)
	require.Nil(t, triples)
}
