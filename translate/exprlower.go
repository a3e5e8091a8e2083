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
	"github.com/vital-ai/vitalgraph-sparql/expr"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// exprResolver adapts a Translator + Fragment pair to expr.Resolver, so
// package expr can lower FILTER/BIND/HAVING expressions without
// depending on package translate (spec §9: expr stays a leaf package).
type exprResolver struct {
	t   *Translator
	ctx *sqlcore.Context
	gen *alias.Generator
	f   *Fragment
}

func (r *exprResolver) ResolveVar(name string) (expr.Binding, bool) {
	vb, ok := r.f.Vars[name]
	if !ok {
		return expr.Binding{}, false
	}
	return vb.ToExprBinding(), true
}

func (r *exprResolver) ResolveTerm(term sqlcore.Term) (string, error) {
	resolved, err := r.t.ResolveBatch(r.ctx, []sqlcore.Term{term})
	if err != nil {
		return "", err
	}
	return IDExprFor(resolved, term), nil
}

// LowerExists translates pattern as an independent subquery (its own
// derived alias space, since its aliases must never collide with the
// enclosing fragment's) and renders it as an EXISTS()/NOT EXISTS()
// boolean expression (spec §4.5).
func (r *exprResolver) LowerExists(pattern algebra.Node, negate bool) (string, error) {
	sub, err := r.t.Translate(r.ctx, r.gen.Derive("exists"), pattern, GraphContext{})
	if err != nil {
		return "", err
	}
	// A correlated EXISTS subquery only needs to prove a matching row,
	// so unresolved variables shared with the outer fragment are linked
	// by reusing the outer var's IDExpr as if it were a bound term: any
	// variable already declared in r.f carries over as an implicit join
	// condition.
	for name, outer := range r.f.Vars {
		if inner, ok := sub.Vars[name]; ok {
			sub.AddWhere(outer.IDExpr + " = " + inner.IDExpr)
		}
	}
	rendered := sub.RenderExists()
	if negate {
		return "(NOT EXISTS (" + rendered + "))", nil
	}
	return "(EXISTS (" + rendered + "))", nil
}

// lowerBool lowers a FILTER/HAVING/ON boolean expression against f.
func (t *Translator) lowerBool(ctx *sqlcore.Context, gen *alias.Generator, f *Fragment, e algebra.Expr) (string, error) {
	return expr.LowerBool(&exprResolver{t: t, ctx: ctx, gen: gen, f: f}, e)
}

// lowerValue lowers a BIND/aggregate-argument scalar expression against f.
func (t *Translator) lowerValue(ctx *sqlcore.Context, gen *alias.Generator, f *Fragment, e algebra.Expr) (string, error) {
	return expr.LowerValue(&exprResolver{t: t, ctx: ctx, gen: gen, f: f}, e)
}
