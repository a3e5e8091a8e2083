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
	"github.com/opentracing/opentracing-go"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// load dereferences op.Source and inserts the triples it names into
// op.IntoGraph (the global graph if empty), per spec §4.7's LOAD.
func (d *Dispatcher) load(ctx *sqlcore.Context, op *algebra.Load) error {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "update.load")
	defer span.Finish()
	loadCtx := sqlcore.NewContext(spanCtx, d.Space, ctx.QueryTimeout)

	triples, err := d.Loader.Load(loadCtx, op.Source)
	if err != nil {
		if op.Silent {
			d.Log.WithError(err).Warn("LOAD failed under SILENT, ignoring")
			return nil
		}
		return err
	}

	graphIRI := op.IntoGraph
	if graphIRI == "" {
		graphIRI = d.Schema.GlobalGraphIRI
	}

	scope := newBlankScope()
	ground := make([]groundQuad, 0, len(triples))
	for _, t := range triples {
		s := t[0]
		if s.Kind == sqlcore.BlankKind {
			s = scope.resolve(s.Text)
		}
		p := t[1]
		o := t[2]
		if o.Kind == sqlcore.BlankKind {
			o = scope.resolve(o.Text)
		}
		ground = append(ground, groundQuad{
			Subject:   s,
			Predicate: p,
			Object:    o,
			Graph:     sqlcore.IRI(graphIRI),
		})
	}

	quads, err := d.internQuads(ctx, ground)
	if err != nil {
		return err
	}
	if _, err := d.Mutator.InsertQuads(ctx, d.Space, quads); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "LOAD insert")
	}
	return nil
}
