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
	"io"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func (d *Dispatcher) createGraph(ctx *sqlcore.Context, op *algebra.CreateGraph) error {
	exists, err := d.Graphs.Exists(ctx, d.Space, op.Graph)
	if err != nil {
		return sqlcore.ErrBackend.Wrap(err, "CREATE GRAPH")
	}
	if exists {
		if op.Silent {
			return nil
		}
		return sqlcore.ErrUpdate.New("graph already exists: " + op.Graph)
	}
	if _, err := d.graphIDFor(ctx, op.Graph); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) dropGraph(ctx *sqlcore.Context, op *algebra.DropGraph) error {
	id, ok, err := d.resolveGraphID(ctx, op.Graph)
	if err != nil {
		return err
	}
	if !ok {
		if op.Silent {
			return nil
		}
		return sqlcore.ErrUpdate.New("unknown graph: " + op.Graph)
	}
	if _, err := d.Mutator.DeleteQuadsMatching(ctx, d.Space, id); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "DROP GRAPH")
	}
	if err := d.Graphs.Unregister(ctx, d.Space, op.Graph); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "DROP GRAPH")
	}
	return nil
}

func (d *Dispatcher) clearGraph(ctx *sqlcore.Context, op *algebra.ClearGraph) error {
	id, ok, err := d.resolveGraphID(ctx, op.Graph)
	if err != nil {
		return err
	}
	if !ok {
		if op.Silent {
			return nil
		}
		return sqlcore.ErrUpdate.New("unknown graph: " + op.Graph)
	}
	if _, err := d.Mutator.DeleteQuadsMatching(ctx, d.Space, id); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "CLEAR GRAPH")
	}
	return nil
}

// refIRI resolves a GraphRef to the graph IRI it names, substituting the
// configured default-graph sentinel for DEFAULT.
func (d *Dispatcher) refIRI(ref algebra.GraphRef) string {
	if ref.IsDefault {
		return d.Schema.GlobalGraphIRI
	}
	return ref.IRI
}

// copyQuads copies every quad of src into dst, reusing the existing
// term ids (no re-interning needed: only the graph column changes).
func (d *Dispatcher) copyQuads(ctx *sqlcore.Context, srcID, dstID sqlcore.TermID) error {
	quads, err := d.quadsInGraph(ctx, srcID)
	if err != nil {
		return err
	}
	if len(quads) == 0 {
		return nil
	}
	for i := range quads {
		quads[i].Graph = dstID
	}
	if _, err := d.Mutator.InsertQuads(ctx, d.Space, quads); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "copying graph quads")
	}
	return nil
}

// quadsInGraph reads every quad whose graph is g, via a direct query
// against the quad table (the same raw-ids approach result.Describe
// uses for its subject sweep).
func (d *Dispatcher) quadsInGraph(ctx *sqlcore.Context, g sqlcore.TermID) ([]sqlcore.Quad, error) {
	query := "SELECT s_id, p_id, o_id FROM " + sqlcore.QuoteIdent(d.Schema.QuadTable) +
		" WHERE g_id = " + itoaTermID(g)
	iter, err := d.Backend.Query(ctx, d.Space, query)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "reading graph quads")
	}
	defer iter.Close(ctx)

	var out []sqlcore.Quad
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sqlcore.ErrBackend.Wrap(err, "reading graph quads")
		}
		out = append(out, sqlcore.Quad{
			Subject:   sqlcore.TermID(toInt64(row[0])),
			Predicate: sqlcore.TermID(toInt64(row[1])),
			Object:    sqlcore.TermID(toInt64(row[2])),
			Graph:     g,
		})
	}
	return out, nil
}

func (d *Dispatcher) copyGraph(ctx *sqlcore.Context, op *algebra.CopyGraph) error {
	srcIRI, dstIRI := d.refIRI(op.Src), d.refIRI(op.Dst)
	srcID, ok, err := d.resolveGraphID(ctx, srcIRI)
	if err != nil {
		return err
	}
	if !ok {
		if op.Silent {
			return nil
		}
		return sqlcore.ErrUpdate.New("unknown graph: " + srcIRI)
	}
	dstID, err := d.graphIDFor(ctx, dstIRI)
	if err != nil {
		return err
	}
	if _, err := d.Mutator.DeleteQuadsMatching(ctx, d.Space, dstID); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "COPY GRAPH")
	}
	return d.copyQuads(ctx, srcID, dstID)
}

func (d *Dispatcher) moveGraph(ctx *sqlcore.Context, op *algebra.MoveGraph) error {
	if err := d.copyGraph(ctx, &algebra.CopyGraph{Src: op.Src, Dst: op.Dst, Silent: op.Silent}); err != nil {
		return err
	}
	srcIRI := d.refIRI(op.Src)
	srcID, ok, err := d.resolveGraphID(ctx, srcIRI)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if _, err := d.Mutator.DeleteQuadsMatching(ctx, d.Space, srcID); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "MOVE GRAPH")
	}
	return nil
}

func (d *Dispatcher) addGraph(ctx *sqlcore.Context, op *algebra.AddGraph) error {
	srcIRI, dstIRI := d.refIRI(op.Src), d.refIRI(op.Dst)
	srcID, ok, err := d.resolveGraphID(ctx, srcIRI)
	if err != nil {
		return err
	}
	if !ok {
		if op.Silent {
			return nil
		}
		return sqlcore.ErrUpdate.New("unknown graph: " + srcIRI)
	}
	dstID, err := d.graphIDFor(ctx, dstIRI)
	if err != nil {
		return err
	}
	if srcID == dstID {
		return nil
	}
	return d.copyQuads(ctx, srcID, dstID)
}
