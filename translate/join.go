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

// clone makes an independent copy of f so combinators can mutate a
// working copy without corrupting a side's own Fragment.
func clone(f *Fragment) *Fragment {
	out := NewFragment()
	out.From = f.From
	out.Joins = append(out.Joins, f.Joins...)
	out.Where = append(out.Where, f.Where...)
	out.Having = append(out.Having, f.Having...)
	out.GroupBy = append(out.GroupBy, f.GroupBy...)
	for k, v := range f.Vars {
		out.Vars[k] = v
	}
	for k := range f.declared {
		out.declared[k] = true
	}
	return out
}

// mergeVars folds right's variable bindings into f (which already holds
// left's). A variable shared by both sides of a Join is a natural-join
// key: spec §4.3's Join handler compiles it into an equality predicate
// between the two sides' id expressions, rather than picking one side
// arbitrarily.
func mergeVars(f *Fragment, right *Fragment) {
	for name, rb := range right.Vars {
		lb, ok := f.Vars[name]
		if !ok {
			f.Vars[name] = rb
			continue
		}
		f.AddWhere(lb.IDExpr + " = " + rb.IDExpr)
		if lb.TermAlias == "" && rb.TermAlias != "" {
			lb.TermAlias = rb.TermAlias
			f.Vars[name] = lb
		}
	}
}

// translateJoin implements spec §4.3's Join handler: both sides are
// translated independently (each under its own derived alias space) and
// combined with a CROSS JOIN plus equality predicates on every variable
// shared between them.
func (t *Translator) translateJoin(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Join, gctx GraphContext) (*Fragment, error) {
	left, err := t.Translate(ctx, gen.Derive("l"), n.Left, gctx)
	if err != nil {
		return nil, err
	}
	right, err := t.Translate(ctx, gen.Derive("r"), n.Right, gctx)
	if err != nil {
		return nil, err
	}

	f := clone(left)
	f.AdoptFrom(right, false)
	mergeVars(f, right)
	return f, nil
}
