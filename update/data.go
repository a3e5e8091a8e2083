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
	"github.com/mitchellh/hashstructure"
	uuid "github.com/satori/go.uuid"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// blankScope maps the blank node labels written in one DATA block to
// fresh node identities (spec §4.7: "blank nodes in a DATA block denote
// nodes fresh to that execution; the same label reused twice within one
// block denotes the same fresh node"). A new blankScope must be built
// per INSERT/DELETE DATA statement, never reused across them.
type blankScope struct {
	labels map[string]sqlcore.Term
}

func newBlankScope() *blankScope {
	return &blankScope{labels: map[string]sqlcore.Term{}}
}

// resolve returns the fresh term a DATA block's blank label denotes,
// minting one (tagged with a UUID so it can never collide with a label a
// concurrent or prior execution mints) the first time label is seen.
func (b *blankScope) resolve(label string) sqlcore.Term {
	if t, ok := b.labels[label]; ok {
		return t
	}
	t := sqlcore.BlankNode(uuid.NewV4().String())
	b.labels[label] = t
	return t
}

// groundQuad is one fully-resolved (non-variable) quad awaiting term
// interning.
type groundQuad struct {
	Subject, Predicate, Object, Graph sqlcore.Term
}

// resolveGroundTerm turns a QuadTemplate position into a concrete term,
// rejecting SPARQL variables (DATA blocks are ground by definition; spec
// §4.7) and scoping blank node labels through scope.
func resolveGroundTerm(pt algebra.PatternTerm, scope *blankScope) (sqlcore.Term, error) {
	if pt.IsVar() {
		return sqlcore.Term{}, sqlcore.ErrUpdate.New("variable ?" + pt.Var + " not permitted in a DATA block")
	}
	if pt.Bound == nil {
		return sqlcore.Term{}, sqlcore.ErrUpdate.New("empty term in DATA block")
	}
	if pt.Bound.Kind == sqlcore.BlankKind {
		return scope.resolve(pt.Bound.Text), nil
	}
	return *pt.Bound, nil
}

// groundQuads resolves every QuadTemplate in quads against defaultGraph
// (used when a template's own Graph is nil) and deduplicates identical
// quads within the same block (spec §4.7's DATA blocks are sets; writing
// the same triple twice has no extra effect).
func groundQuads(quads []algebra.QuadTemplate, defaultGraphIRI string) ([]groundQuad, error) {
	scope := newBlankScope()
	seen := map[uint64]bool{}
	out := make([]groundQuad, 0, len(quads))
	for _, q := range quads {
		s, err := resolveGroundTerm(q.Subject, scope)
		if err != nil {
			return nil, err
		}
		p, err := resolveGroundTerm(q.Predicate, scope)
		if err != nil {
			return nil, err
		}
		o, err := resolveGroundTerm(q.Object, scope)
		if err != nil {
			return nil, err
		}
		g := sqlcore.IRI(defaultGraphIRI)
		if q.Graph != nil {
			g, err = resolveGroundTerm(*q.Graph, scope)
			if err != nil {
				return nil, err
			}
		}
		gq := groundQuad{Subject: s, Predicate: p, Object: o, Graph: g}
		h, err := hashstructure.Hash(gq, nil)
		if err != nil {
			return nil, sqlcore.ErrUpdate.Wrap(err, "hashing ground quad")
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, gq)
	}
	return out, nil
}

// internQuads interns every distinct term across quads in one batch, then
// resolves each quad to its four TermIDs, registering any named graphs
// used along the way.
func (d *Dispatcher) internQuads(ctx *sqlcore.Context, quads []groundQuad) ([]sqlcore.Quad, error) {
	termSet := map[sqlcore.CacheKey]sqlcore.Term{}
	graphIRIs := map[string]bool{}
	for _, q := range quads {
		termSet[q.Subject.Key()] = q.Subject
		termSet[q.Predicate.Key()] = q.Predicate
		termSet[q.Object.Key()] = q.Object
		termSet[q.Graph.Key()] = q.Graph
		if q.Graph.Kind == sqlcore.IRIKind && q.Graph.Text != d.Schema.GlobalGraphIRI {
			graphIRIs[q.Graph.Text] = true
		}
	}
	if len(graphIRIs) > 0 {
		iris := make([]string, 0, len(graphIRIs))
		for iri := range graphIRIs {
			iris = append(iris, iri)
		}
		if err := d.Graphs.EnsureRegistered(ctx, d.Space, iris); err != nil {
			return nil, sqlcore.ErrBackend.Wrap(err, "registering graphs")
		}
	}

	terms := make([]sqlcore.Term, 0, len(termSet))
	for _, t := range termSet {
		terms = append(terms, t)
	}
	ids, err := d.Resolver.InternBatch(ctx, d.Space, terms)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "interning terms")
	}

	out := make([]sqlcore.Quad, len(quads))
	for i, q := range quads {
		out[i] = sqlcore.Quad{
			Subject:   ids[q.Subject.Key()],
			Predicate: ids[q.Predicate.Key()],
			Object:    ids[q.Object.Key()],
			Graph:     ids[q.Graph.Key()],
		}
	}
	return out, nil
}

func (d *Dispatcher) insertData(ctx *sqlcore.Context, op *algebra.InsertData) error {
	ground, err := groundQuads(op.Quads, d.Schema.GlobalGraphIRI)
	if err != nil {
		return err
	}
	quads, err := d.internQuads(ctx, ground)
	if err != nil {
		return err
	}
	if _, err := d.Mutator.InsertQuads(ctx, d.Space, quads); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "INSERT DATA")
	}
	return nil
}

// deleteData resolves ground terms against the existing dictionary only
// (ResolveBatch, not InternBatch): a term that was never interned cannot
// match any stored quad, so it is simply dropped from the delete set
// rather than spuriously created (spec §4.7: DELETE DATA of a
// never-asserted quad is a no-op).
func (d *Dispatcher) deleteData(ctx *sqlcore.Context, op *algebra.DeleteData) error {
	ground, err := groundQuads(op.Quads, d.Schema.GlobalGraphIRI)
	if err != nil {
		return err
	}

	keys := make([]sqlcore.CacheKey, 0, len(ground)*4)
	for _, q := range ground {
		keys = append(keys, q.Subject.Key(), q.Predicate.Key(), q.Object.Key(), q.Graph.Key())
	}
	ids, err := d.Resolver.ResolveBatch(ctx, d.Space, keys)
	if err != nil {
		return sqlcore.ErrBackend.Wrap(err, "resolving terms for DELETE DATA")
	}

	quads := make([]sqlcore.Quad, 0, len(ground))
	for _, q := range ground {
		sID, sok := ids[q.Subject.Key()]
		pID, pok := ids[q.Predicate.Key()]
		oID, ook := ids[q.Object.Key()]
		gID, gok := ids[q.Graph.Key()]
		if !sok || !pok || !ook || !gok {
			continue
		}
		quads = append(quads, sqlcore.Quad{Subject: sID, Predicate: pID, Object: oID, Graph: gID})
	}
	if len(quads) == 0 {
		return nil
	}
	if _, err := d.Mutator.DeleteQuads(ctx, d.Space, quads); err != nil {
		return sqlcore.ErrBackend.Wrap(err, "DELETE DATA")
	}
	return nil
}
