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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sql "github.com/vital-ai/vitalgraph-sparql/sql"
)

func TestCopyGraph_UnknownSrcWithoutSilentErrors(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	ctx := sql.NewContext(context.Background(), "default", 0)
	err := d.copyGraph(ctx, &algebra.CopyGraph{
		Src: algebra.GraphRef{IRI: "http://ex/missing"},
		Dst: algebra.GraphRef{IRI: "http://ex/dst"},
	})
	require.Error(t, err)
}

func TestCopyGraph_UnknownSrcWithSilentNoops(t *testing.T) {
	d, _, _, _ := newTestDispatcher()
	ctx := sql.NewContext(context.Background(), "default", 0)
	err := d.copyGraph(ctx, &algebra.CopyGraph{
		Src:    algebra.GraphRef{IRI: "http://ex/missing"},
		Dst:    algebra.GraphRef{IRI: "http://ex/dst"},
		Silent: true,
	})
	require.NoError(t, err)
}

func TestCopyGraph_KnownSrcClearsAndCopiesIntoDst(t *testing.T) {
	d, mutator, _, _ := newTestDispatcher()
	ctx := sql.NewContext(context.Background(), "default", 0)
	require.NoError(t, d.createGraph(ctx, &algebra.CreateGraph{Graph: "http://ex/src"}))
	require.NoError(t, d.createGraph(ctx, &algebra.CreateGraph{Graph: "http://ex/dst"}))
	err := d.copyGraph(ctx, &algebra.CopyGraph{
		Src: algebra.GraphRef{IRI: "http://ex/src"},
		Dst: algebra.GraphRef{IRI: "http://ex/dst"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, mutator.deletedGraphs)
}

func TestAddGraph_SameSrcAndDstNoops(t *testing.T) {
	d, mutator, _, _ := newTestDispatcher()
	ctx := sql.NewContext(context.Background(), "default", 0)
	require.NoError(t, d.createGraph(ctx, &algebra.CreateGraph{Graph: "http://ex/g1"}))
	err := d.addGraph(ctx, &algebra.AddGraph{
		Src: algebra.GraphRef{IRI: "http://ex/g1"},
		Dst: algebra.GraphRef{IRI: "http://ex/g1"},
	})
	require.NoError(t, err)
	require.Empty(t, mutator.inserted)
}

func TestMoveGraph_ClearsSourceAfterCopy(t *testing.T) {
	d, mutator, _, _ := newTestDispatcher()
	ctx := sql.NewContext(context.Background(), "default", 0)
	require.NoError(t, d.createGraph(ctx, &algebra.CreateGraph{Graph: "http://ex/src"}))
	require.NoError(t, d.moveGraph(ctx, &algebra.MoveGraph{
		Src: algebra.GraphRef{IRI: "http://ex/src"},
		Dst: algebra.GraphRef{IRI: "http://ex/dst"},
	}))
	// dst cleared once (CopyGraph) + src cleared once (Move's own step).
	require.Len(t, mutator.deletedGraphs, 2)
}
