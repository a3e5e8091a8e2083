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

package engine

import (
	"github.com/opentracing/opentracing-go"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	"github.com/vital-ai/vitalgraph-sparql/result"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
	"github.com/vital-ai/vitalgraph-sparql/translate"
)

// Form names which of the four SPARQL result shapes a Query produces
// (spec §4.8).
type Form int

const (
	Select Form = iota
	Construct
	Ask
	Describe
)

// Query is the orchestrator's input: an already-parsed algebra tree
// tagged with its query form and whatever extra structure that form
// needs (a CONSTRUCT template, a DESCRIBE target list). Body is the
// WHERE clause wrapped in its outer modifiers (Project/Distinct/
// Slice/OrderBy), exactly what translate.AssembleSelect expects.
type Query struct {
	Form Form
	Body algebra.Node

	// ConstructTemplate is read only when Form == Construct.
	ConstructTemplate []algebra.TriplePattern

	// DescribeTargets is read only when Form == Describe: each entry is
	// either a bound IRI (literally named in the DESCRIBE clause) or a
	// variable resolved from Body's solutions (spec §4.8).
	DescribeTargets []algebra.PatternTerm
}

// Result is the union of the four result shapes spec §4.8 names; the
// caller switches on Form to know which field is populated.
type Result struct {
	Form      Form
	Solutions []result.Solution
	Triples   []result.Triple
	Boolean   bool
}

// Query runs q against space and marshals its rows into the result
// shape q.Form names.
func (e *Engine) Query(ctx *sqlcore.Context, space string, schema sqlcore.SpaceSchema, q *Query) (*Result, error) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "engine.query")
	defer span.Finish()
	qctx := sqlcore.NewContext(spanCtx, space, ctx.QueryTimeout)
	qctx, cancel := qctx.WithTimeout()
	defer cancel()

	tr, err := e.translator(space, schema)
	if err != nil {
		return nil, err
	}

	switch q.Form {
	case Select:
		sols, err := e.runSelect(qctx, tr, q.Body)
		if err != nil {
			return nil, err
		}
		return &Result{Form: Select, Solutions: sols}, nil
	case Construct:
		sols, err := e.runSelect(qctx, tr, q.Body)
		if err != nil {
			return nil, err
		}
		return &Result{Form: Construct, Triples: result.Construct(sols, q.ConstructTemplate)}, nil
	case Ask:
		limited := &algebra.Slice{Child: q.Body, HasLength: true, Length: 1}
		ok, err := e.runAsk(qctx, tr, limited)
		if err != nil {
			return nil, err
		}
		return &Result{Form: Ask, Boolean: ok}, nil
	case Describe:
		triples, err := e.runDescribe(qctx, tr, schema, q)
		if err != nil {
			return nil, err
		}
		return &Result{Form: Describe, Triples: triples}, nil
	default:
		return nil, sqlcore.ErrUnsupported.New("query form")
	}
}

func (e *Engine) runSelect(ctx *sqlcore.Context, tr *translate.Translator, body algebra.Node) ([]result.Solution, error) {
	gen := alias.New()
	rendered, err := tr.AssembleSelect(ctx, gen, body, translate.GraphContext{})
	if err != nil {
		return nil, err
	}
	iter, err := e.Backend.Query(ctx, ctx.Space, rendered.SQL)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "query")
	}
	defer iter.Close(ctx)
	return result.Select(ctx, iter, rendered.Vars)
}

func (e *Engine) runAsk(ctx *sqlcore.Context, tr *translate.Translator, body algebra.Node) (bool, error) {
	gen := alias.New()
	rendered, err := tr.AssembleSelect(ctx, gen, body, translate.GraphContext{})
	if err != nil {
		return false, err
	}
	iter, err := e.Backend.Query(ctx, ctx.Space, rendered.SQL)
	if err != nil {
		return false, sqlcore.ErrBackend.Wrap(err, "ask query")
	}
	defer iter.Close(ctx)
	return result.Ask(ctx, iter)
}

// runDescribe resolves q.DescribeTargets to subject term ids — literal
// IRIs resolve directly, variables run q.Body as a SELECT and collect
// every distinct bound IRI/blank node across its solutions — then emits
// the flat triple list spec §4.8 describes.
func (e *Engine) runDescribe(ctx *sqlcore.Context, tr *translate.Translator, schema sqlcore.SpaceSchema, q *Query) ([]result.Triple, error) {
	termSet := map[sqlcore.CacheKey]sqlcore.Term{}
	for _, target := range q.DescribeTargets {
		if !target.IsVar() {
			if target.Bound != nil {
				termSet[target.Bound.Key()] = *target.Bound
			}
			continue
		}
		if q.Body == nil {
			continue
		}
		sols, err := e.runSelect(ctx, tr, q.Body)
		if err != nil {
			return nil, err
		}
		for _, sol := range sols {
			if t, ok := sol[target.Var]; ok && t.Kind != sqlcore.LiteralKind {
				termSet[t.Key()] = t
			}
		}
	}
	if len(termSet) == 0 {
		return nil, nil
	}

	keys := make([]sqlcore.CacheKey, 0, len(termSet))
	terms := make([]sqlcore.Term, 0, len(termSet))
	for k, t := range termSet {
		keys = append(keys, k)
		terms = append(terms, t)
	}
	resolved, err := e.Resolver.ResolveBatch(ctx, ctx.Space, keys)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "resolving DESCRIBE targets")
	}

	ids := make([]sqlcore.TermID, 0, len(terms))
	for _, t := range terms {
		if id, ok := resolved[t.Key()]; ok {
			ids = append(ids, id)
		}
	}
	return result.Describe(ctx, e.Backend, schema, e.Resolver, ids)
}
