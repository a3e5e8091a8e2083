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

package translate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/config"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	"github.com/vital-ai/vitalgraph-sparql/internal/graphreg"
	"github.com/vital-ai/vitalgraph-sparql/internal/termcache"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// GraphContext is the "concrete graph_id = ? constraint" an enclosing
// GRAPH handler passes down to a BGP (spec §4.3's Graph handler). The
// zero value means "no constraint": default-graph-as-union-of-all-graphs
// semantics, per this spec's resolved Open Question.
type GraphContext struct {
	// Fixed is true when an enclosing GRAPH <iri> supplied a concrete id.
	Fixed bool
	// NeverMatch is true when that IRI is not a known graph, per spec
	// §4.3: "if the graph does not exist, compile a never-match
	// constraint".
	NeverMatch bool
	// IDExpr is the SQL literal for the fixed graph id (only meaningful
	// when Fixed && !NeverMatch).
	IDExpr string
	// VarName is set instead of Fixed when the enclosing GRAPH used a
	// variable (`GRAPH ?g { ... }`): every quad alias a BGP/Path leaf
	// introduces under this context must agree on one g_id, bound to
	// this SPARQL variable (spec §4.3 Graph handler, variable case).
	VarName string
}

// Translator is the pattern translator of spec §4.3. It is stateless
// across queries except for the two soft caches (term cache, graph
// registry), exactly as spec §3's Lifecycles section requires.
type Translator struct {
	Schema   sqlcore.SpaceSchema
	Resolver sqlcore.TermResolver
	Cache    *termcache.Cache
	Graphs   *graphreg.Registry
	Config   config.Options
	Log      *logrus.Entry

	Space string
}

// New builds a Translator for one space. The Translator itself holds no
// per-query mutable state; alias.Generator and GraphContext are threaded
// explicitly through every call instead (spec §9's "mutable shared
// counters" redesign flag).
func New(space string, schema sqlcore.SpaceSchema, resolver sqlcore.TermResolver, cache *termcache.Cache, graphs *graphreg.Registry, cfg config.Options, log *logrus.Entry) *Translator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Translator{
		Schema:   schema,
		Resolver: resolver,
		Cache:    cache,
		Graphs:   graphs,
		Config:   cfg,
		Log:      log,
		Space:    space,
	}
}

// Translate dispatches on node's concrete type, per spec §4.3's handler
// table. gctx carries any enclosing GRAPH constraint down to BGP/Path
// leaves.
func (t *Translator) Translate(ctx *sqlcore.Context, gen *alias.Generator, node algebra.Node, gctx GraphContext) (*Fragment, error) {
	switch n := node.(type) {
	case *algebra.BGP:
		return t.translateBGP(ctx, gen, n, gctx)
	case *algebra.PathPattern:
		return t.translatePath(ctx, gen, n, gctx)
	case *algebra.Join:
		return t.translateJoin(ctx, gen, n, gctx)
	case *algebra.LeftJoin:
		return t.translateLeftJoin(ctx, gen, n, gctx)
	case *algebra.Union:
		return t.translateUnion(ctx, gen, n, gctx)
	case *algebra.Minus:
		return t.translateMinus(ctx, gen, n, gctx)
	case *algebra.Filter:
		return t.translateFilter(ctx, gen, n, gctx)
	case *algebra.Extend:
		return t.translateExtend(ctx, gen, n, gctx)
	case *algebra.Graph:
		return t.translateGraph(ctx, gen, n, gctx)
	case *algebra.Values:
		return t.translateValues(ctx, gen, n)
	case *algebra.Subquery:
		return t.translateSubquery(ctx, gen, n)
	case *algebra.AggregateJoin:
		return t.translateAggregateJoin(ctx, gen, n, gctx)
	case *algebra.Group:
		return t.translateGroup(ctx, gen, n, gctx)
	case *algebra.Project:
		return t.Translate(ctx, gen, n.Child, gctx)
	case *algebra.Distinct:
		return t.Translate(ctx, gen, n.Child, gctx)
	case *algebra.Slice:
		return t.Translate(ctx, gen, n.Child, gctx)
	case *algebra.OrderBy:
		return t.Translate(ctx, gen, n.Child, gctx)
	default:
		return nil, sqlcore.ErrTranslation.New(fmt.Sprintf("unhandled algebra node %T", node))
	}
}
