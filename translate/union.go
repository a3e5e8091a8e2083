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
	"sort"
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// unionVars returns the sorted set of every variable bound on either
// side of a Union, so both branches can be projected with identical,
// order-matched column lists (required for SQL UNION ALL).
func unionVars(sides ...*Fragment) []string {
	seen := map[string]bool{}
	for _, s := range sides {
		for name := range s.Vars {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// selectBranch renders f as `SELECT <id/text/kind/lang/dt ...> FROM
// ... [JOIN ...] [WHERE ...]`, exposing NULLs for vars f does not bind,
// so it can sit on one side of a UNION ALL.
func selectBranch(f *Fragment, vars []string) string {
	cols := make([]string, 0, len(vars)*4)
	for _, name := range vars {
		vb, ok := f.Vars[name]
		if !ok {
			cols = append(cols,
				"NULL AS "+colName(name, "id"),
				"NULL AS "+colName(name, "text"),
				"NULL AS "+colName(name, "kind"),
				"NULL AS "+colName(name, "lang"),
				"NULL AS "+colName(name, "dt"))
			continue
		}
		eb := vb.ToExprBinding()
		cols = append(cols,
			eb.IDExpr+" AS "+colName(name, "id"),
			nullableText(eb.TextExpr)+" AS "+colName(name, "text"),
			nullableText(eb.KindExpr)+" AS "+colName(name, "kind"),
			nullableText(eb.LangExpr)+" AS "+colName(name, "lang"),
			nullableText(eb.DatatypeExpr)+" AS "+colName(name, "dt"))
	}
	if len(cols) == 0 {
		cols = []string{"1 AS dual"}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(f.From)
	for _, j := range f.Joins {
		b.WriteByte(' ')
		b.WriteString(renderJoinClause(j))
	}
	if len(f.Where) > 0 {
		b.WriteString(" WHERE ")
		for i, w := range f.Where {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.WriteByte('(')
			b.WriteString(w)
			b.WriteByte(')')
		}
	}
	return b.String()
}

func nullableText(e string) string {
	if e == "" {
		return "NULL"
	}
	return e
}

func colName(varName, field string) string { return "v_" + varName + "_" + field }

// translateUnion implements spec §4.3's Union handler by materializing
// both branches as their own SELECTs over a shared column list and
// combining them with UNION ALL (SPARQL UNION does not deduplicate;
// deduplication is DISTINCT's job further up the tree).
func (t *Translator) translateUnion(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Union, gctx GraphContext) (*Fragment, error) {
	left, err := t.Translate(ctx, gen.Derive("l"), n.Left, gctx)
	if err != nil {
		return nil, err
	}
	right, err := t.Translate(ctx, gen.Derive("r"), n.Right, gctx)
	if err != nil {
		return nil, err
	}

	return unionFragments(gen, left, right), nil
}

// unionFragments combines two already-translated fragments with UNION
// ALL, sharing the selectBranch/column-quintuple machinery translateUnion
// uses. Shared with package-internal callers (e.g. the path compiler's
// alternation and negated-property-set handling) that already hold two
// Fragments rather than two algebra.Node operands.
func unionFragments(gen *alias.Generator, left, right *Fragment) *Fragment {
	vars := unionVars(left, right)
	leftSQL := selectBranch(left, vars)
	rightSQL := selectBranch(right, vars)

	subAlias := gen.Next(alias.Subquery)
	f := NewFragment()
	f.SetFrom("("+leftSQL+" UNION ALL "+rightSQL+") AS "+subAlias, subAlias)

	for _, name := range vars {
		f.Vars[name] = VarBinding{
			IDExpr:       qualify(subAlias, colName(name, "id")),
			TextExpr:     qualify(subAlias, colName(name, "text")),
			KindExpr:     qualify(subAlias, colName(name, "kind")),
			LangExpr:     qualify(subAlias, colName(name, "lang")),
			DatatypeExpr: qualify(subAlias, colName(name, "dt")),
		}
	}
	return f
}
