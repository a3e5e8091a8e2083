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
	"strconv"
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Rendered is a fully assembled outer SELECT: its SQL text and the
// ordered list of SPARQL variables its quintuple columns expose (spec
// §4.6's final SELECT assembly).
type Rendered struct {
	SQL  string
	Vars []string
}

// AssembleSelect walks node's outer modifiers (Project, Distinct,
// OrderBy, Slice — spec §4.6) in any nesting order, translates the
// remaining body, and renders one complete SQL SELECT statement
// exposing one (id, text, kind, lang, datatype) quintuple of columns
// per output variable.
func (t *Translator) AssembleSelect(ctx *sqlcore.Context, gen *alias.Generator, node algebra.Node, gctx GraphContext) (*Rendered, error) {
	var (
		distinct    bool
		sliceNode   *algebra.Slice
		orderNode   *algebra.OrderBy
		projectVars []string
		haveProject bool
	)

	cur := node
peel:
	for {
		switch n := cur.(type) {
		case *algebra.Slice:
			sliceNode = n
			cur = n.Child
		case *algebra.OrderBy:
			orderNode = n
			cur = n.Child
		case *algebra.Distinct:
			distinct = true
			cur = n.Child
		case *algebra.Project:
			projectVars = n.Vars
			haveProject = true
			cur = n.Child
		default:
			break peel
		}
	}

	f, err := t.Translate(ctx, gen, cur, gctx)
	if err != nil {
		return nil, err
	}

	vars := projectVars
	if !haveProject {
		vars = make([]string, 0, len(f.Vars))
		for name := range f.Vars {
			vars = append(vars, name)
		}
		sort.Strings(vars)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(selectList(f, vars))
	b.WriteString(" FROM ")
	b.WriteString(f.From)
	for _, j := range f.Joins {
		b.WriteByte(' ')
		b.WriteString(renderJoinClause(j))
	}
	if len(f.Where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(andList(f.Where))
	}
	if len(f.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(f.GroupBy, ", "))
	}
	if len(f.Having) > 0 {
		b.WriteString(" HAVING ")
		b.WriteString(andList(f.Having))
	}
	if orderNode != nil && len(orderNode.Conditions) > 0 {
		clauses := make([]string, 0, len(orderNode.Conditions))
		for _, oc := range orderNode.Conditions {
			expr, err := t.lowerValue(ctx, gen, f, oc.Expr)
			if err != nil {
				return nil, err
			}
			if oc.Descending {
				expr += " DESC"
			}
			clauses = append(clauses, expr)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(clauses, ", "))
	}
	if sliceNode != nil {
		if sliceNode.HasLength {
			b.WriteString(" LIMIT ")
			b.WriteString(strconv.FormatInt(sliceNode.Length, 10))
		}
		if sliceNode.Offset > 0 {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.FormatInt(sliceNode.Offset, 10))
		}
	}

	return &Rendered{SQL: b.String(), Vars: vars}, nil
}

// selectList renders the quintuple column list for vars, drawing from
// f.Vars's resolved bindings. An aggregate/BIND result variable has no
// backing term row, so its text/kind/lang/datatype columns are
// synthesized: the value is cast to text with kind 'L' and a NULL
// language and datatype, so it comes back as a plain literal; its SQL
// numeric type is not carried into an RDF datatype.
func selectList(f *Fragment, vars []string) string {
	cols := make([]string, 0, len(vars)*5)
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
		if vb.IsAggregate {
			cols = append(cols,
				"NULL AS "+colName(name, "id"),
				"CAST("+vb.IDExpr+" AS TEXT) AS "+colName(name, "text"),
				"'L' AS "+colName(name, "kind"),
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
		return "1 AS dual"
	}
	return strings.Join(cols, ", ")
}

func andList(conds []string) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = "(" + c + ")"
	}
	return strings.Join(parts, " AND ")
}
