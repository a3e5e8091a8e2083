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

// translateLeftJoin implements spec §4.3's LeftJoin (OPTIONAL) handler.
// All joins originating on the optional side are rewritten to LEFT
// JOIN, and every predicate that would otherwise have eliminated a
// non-matching row (the right side's own WHERE, the variables shared
// with the left side, and the OPTIONAL's own join Expr) is folded into
// that first LEFT JOIN's ON clause instead of the outer WHERE, so a
// non-match pads the result with NULLs rather than dropping the row.
func (t *Translator) translateLeftJoin(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.LeftJoin, gctx GraphContext) (*Fragment, error) {
	left, err := t.Translate(ctx, gen.Derive("l"), n.Left, gctx)
	if err != nil {
		return nil, err
	}
	right, err := t.Translate(ctx, gen.Derive("r"), n.Right, gctx)
	if err != nil {
		return nil, err
	}

	f := clone(left)

	onConds := append([]string{}, right.Where...)
	for name, rb := range right.Vars {
		if lb, ok := f.Vars[name]; ok {
			onConds = append(onConds, lb.IDExpr+" = "+rb.IDExpr)
		}
	}
	if n.Expr != nil {
		scope := clone(f)
		mergeVarsOptional(scope, right)
		cond, err := t.lowerBool(ctx, gen, scope, n.Expr)
		if err != nil {
			return nil, err
		}
		onConds = append(onConds, cond)
	}

	onClause := "1 = 1"
	if len(onConds) > 0 {
		onClause = joinAnd(onConds)
	}

	f.Joins = append(f.Joins, JoinClause{SQL: "LEFT JOIN " + right.From + " ON " + onClause, LeftJoin: true})
	for _, j := range right.Joins {
		// All joins originating on the optional side are rewritten to
		// LEFT JOIN (spec §4.3 LeftJoin): otherwise an inner join here
		// (e.g. the optional pattern's own term-table join) would
		// re-eliminate a left row the outer LEFT JOIN already padded
		// with NULLs.
		f.Joins = append(f.Joins, JoinClause{SQL: j.SQL, LeftJoin: true})
	}
	for a := range right.declared {
		f.declared[a] = true
	}

	mergeVarsOptional(f, right)
	return f, nil
}

// mergeVarsOptional folds the optional side's variable bindings into f
// without emitting WHERE-level equality predicates (those already moved
// into the LEFT JOIN's ON clause above).
func mergeVarsOptional(f *Fragment, right *Fragment) {
	for name, rb := range right.Vars {
		if _, ok := f.Vars[name]; !ok {
			f.Vars[name] = rb
		}
	}
}

func joinAnd(conds []string) string {
	out := "(" + conds[0] + ")"
	for _, c := range conds[1:] {
		out += " AND (" + c + ")"
	}
	return out
}
