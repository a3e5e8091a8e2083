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
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

type fakeRowIter struct {
	rows   []sqlcore.Row
	pos    int
	closed bool
}

func (f *fakeRowIter) Next(ctx context.Context) (sqlcore.Row, error) {
	if f.pos >= len(f.rows) {
		return nil, io.EOF
	}
	row := f.rows[f.pos]
	f.pos++
	return row, nil
}

func (f *fakeRowIter) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func TestSelect_DecodesEveryRow(t *testing.T) {
	iter := &fakeRowIter{rows: []sqlcore.Row{
		{int64(1), "http://ex/a", "U", nil, nil},
		{int64(2), "http://ex/b", "U", nil, nil},
	}}
	sols, err := Select(context.Background(), iter, []string{"s"})
	require.NoError(t, err)
	require.Len(t, sols, 2)
	require.Equal(t, sqlcore.IRI("http://ex/a"), sols[0]["s"])
	require.Equal(t, sqlcore.IRI("http://ex/b"), sols[1]["s"])
}

func TestSelect_EmptyIterReturnsNoSolutions(t *testing.T) {
	iter := &fakeRowIter{}
	sols, err := Select(context.Background(), iter, []string{"s"})
	require.NoError(t, err)
	require.Empty(t, sols)
}

func TestAsk_TrueWhenRowPresent(t *testing.T) {
	iter := &fakeRowIter{rows: []sqlcore.Row{{int64(1)}}}
	ok, err := Ask(context.Background(), iter)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAsk_FalseWhenEmpty(t *testing.T) {
	iter := &fakeRowIter{}
	ok, err := Ask(context.Background(), iter)
	require.NoError(t, err)
	require.False(t, ok)
}
