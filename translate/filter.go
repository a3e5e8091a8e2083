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
	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// exprVars collects the names of every SPARQL variable an expression
// references, used by the HAVING/WHERE split (spec §4.6).
func exprVars(e algebra.Expr, out map[string]bool) {
	switch n := e.(type) {
	case *algebra.Var:
		out[n.Name] = true
	case *algebra.AggregateRef:
		out[n.Var] = true
	case *algebra.UnaryOp:
		exprVars(n.Arg, out)
	case *algebra.BinaryOp:
		exprVars(n.Left, out)
		exprVars(n.Right, out)
	case *algebra.InExpr:
		exprVars(n.Arg, out)
		for _, item := range n.List {
			exprVars(item, out)
		}
	case *algebra.FuncCall:
		for _, a := range n.Args {
			exprVars(a, out)
		}
	case *algebra.ExistsExpr:
		// EXISTS/NOT EXISTS patterns are self-contained subqueries; they
		// never force a HAVING split on the outer fragment.
	}
}

// referencesOnlyAggregates reports whether every variable e touches is
// bound to an aggregate result in f, meaning the predicate belongs in
// HAVING rather than WHERE (spec §4.6).
func referencesOnlyAggregates(f *Fragment, e algebra.Expr) bool {
	vars := map[string]bool{}
	exprVars(e, vars)
	if len(vars) == 0 {
		return false
	}
	for name := range vars {
		b, ok := f.Vars[name]
		if !ok || !b.IsAggregate {
			return false
		}
	}
	return true
}

// translateFilter implements spec §4.3's Filter handler, routing the
// lowered predicate to HAVING when it references only aggregate result
// variables and to WHERE otherwise.
func (t *Translator) translateFilter(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Filter, gctx GraphContext) (*Fragment, error) {
	f, err := t.Translate(ctx, gen, n.Child, gctx)
	if err != nil {
		return nil, err
	}
	cond, err := t.lowerBool(ctx, gen, f, n.Expr)
	if err != nil {
		return nil, err
	}
	if referencesOnlyAggregates(f, n.Expr) {
		f.AddHaving(cond)
	} else {
		f.AddWhere(cond)
	}
	return f, nil
}
