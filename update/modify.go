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
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	"github.com/vital-ai/vitalgraph-sparql/result"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
	"github.com/vital-ai/vitalgraph-sparql/translate"
)

// modify runs a Modify's WHERE pattern, then for each solution
// instantiates its delete and insert templates, deleting first and
// inserting second (spec §4.7's combined form: "the union of all
// deletions is computed and applied before any insertion"). A bare
// DELETE/INSERT-WHERE shorthand arrives with only one of the two
// template slices populated.
func (d *Dispatcher) modify(ctx *sqlcore.Context, op *algebra.Modify) error {
	vars := templateVars(op.DeleteTemplate, op.InsertTemplate)

	gen := alias.New()
	rendered, err := d.Translator.AssembleSelect(ctx, gen, &algebra.Project{Child: op.Where, Vars: vars}, translate.GraphContext{})
	if err != nil {
		return err
	}

	iter, err := d.Backend.Query(ctx, d.Space, rendered.SQL)
	if err != nil {
		return sqlcore.ErrBackend.Wrap(err, "MODIFY WHERE")
	}
	defer iter.Close(ctx)

	var solutions []result.Solution
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return sqlcore.ErrBackend.Wrap(err, "MODIFY WHERE")
		}
		solutions = append(solutions, result.DecodeRow(row, rendered.Vars))
	}

	if len(op.DeleteTemplate) > 0 {
		ground := instantiateTemplates(solutions, op.DeleteTemplate, d.Schema.GlobalGraphIRI)
		quads, err := d.resolveExisting(ctx, ground)
		if err != nil {
			return err
		}
		if len(quads) > 0 {
			if _, err := d.Mutator.DeleteQuads(ctx, d.Space, quads); err != nil {
				return sqlcore.ErrBackend.Wrap(err, "MODIFY DELETE")
			}
		}
	}

	if len(op.InsertTemplate) > 0 {
		ground := instantiateTemplates(solutions, op.InsertTemplate, d.Schema.GlobalGraphIRI)
		quads, err := d.internQuads(ctx, ground)
		if err != nil {
			return err
		}
		if len(quads) > 0 {
			if _, err := d.Mutator.InsertQuads(ctx, d.Space, quads); err != nil {
				return sqlcore.ErrBackend.Wrap(err, "MODIFY INSERT")
			}
		}
	}
	return nil
}

// resolveExisting resolves ground quads against the existing term
// dictionary only, dropping any quad that mentions a never-interned term
// (it cannot be a stored quad, so there is nothing to delete).
func (d *Dispatcher) resolveExisting(ctx *sqlcore.Context, quads []groundQuad) ([]sqlcore.Quad, error) {
	keys := make([]sqlcore.CacheKey, 0, len(quads)*4)
	for _, q := range quads {
		keys = append(keys, q.Subject.Key(), q.Predicate.Key(), q.Object.Key(), q.Graph.Key())
	}
	ids, err := d.Resolver.ResolveBatch(ctx, d.Space, keys)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "resolving terms")
	}
	out := make([]sqlcore.Quad, 0, len(quads))
	for _, q := range quads {
		sID, sok := ids[q.Subject.Key()]
		pID, pok := ids[q.Predicate.Key()]
		oID, ook := ids[q.Object.Key()]
		gID, gok := ids[q.Graph.Key()]
		if !sok || !pok || !ook || !gok {
			continue
		}
		out = append(out, sqlcore.Quad{Subject: sID, Predicate: pID, Object: oID, Graph: gID})
	}
	return out, nil
}

// templateVars collects the distinct variable names referenced by a set
// of quad templates, the projection Modify's WHERE must expose.
func templateVars(templates ...[]algebra.QuadTemplate) []string {
	seen := map[string]bool{}
	var out []string
	add := func(pt algebra.PatternTerm) {
		if pt.IsVar() && !seen[pt.Var] {
			seen[pt.Var] = true
			out = append(out, pt.Var)
		}
	}
	for _, ts := range templates {
		for _, q := range ts {
			add(q.Subject)
			add(q.Predicate)
			add(q.Object)
			if q.Graph != nil {
				add(*q.Graph)
			}
		}
	}
	return out
}

// instantiateTemplates substitutes each solution's bindings into every
// template quad, dropping any instantiation that needs a variable the
// solution left unbound (spec §4.7: "a template quad referencing an
// unbound variable contributes nothing for that solution"). Blank nodes
// written directly in a template (not bound through WHERE) are scoped
// per solution, matching DATA-block freshness semantics at the
// per-result-row granularity.
func instantiateTemplates(solutions []result.Solution, templates []algebra.QuadTemplate, defaultGraphIRI string) []groundQuad {
	var out []groundQuad
	for _, sol := range solutions {
		scope := newBlankScope()
		for _, tpl := range templates {
			s, ok1 := instantiateTerm(sol, tpl.Subject, scope)
			p, ok2 := instantiateTerm(sol, tpl.Predicate, scope)
			o, ok3 := instantiateTerm(sol, tpl.Object, scope)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			g := sqlcore.IRI(defaultGraphIRI)
			if tpl.Graph != nil {
				gt, ok := instantiateTerm(sol, *tpl.Graph, scope)
				if !ok {
					continue
				}
				g = gt
			}
			out = append(out, groundQuad{Subject: s, Predicate: p, Object: o, Graph: g})
		}
	}
	return out
}

func instantiateTerm(sol result.Solution, pt algebra.PatternTerm, scope *blankScope) (sqlcore.Term, bool) {
	if pt.IsVar() {
		t, ok := sol[pt.Var]
		return t, ok
	}
	if pt.Bound == nil {
		return sqlcore.Term{}, false
	}
	if pt.Bound.Kind == sqlcore.BlankKind {
		return scope.resolve(pt.Bound.Text), true
	}
	return *pt.Bound, true
}
