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
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// translateValues implements spec §4.3's Values handler: an inline
// VALUES table is rendered as a SQL VALUES row source, one quintuple of
// columns (id/text/kind/lang/datatype) per SPARQL variable, with UNDEF
// cells rendered as NULL (spec's UNDEF semantics: absent, not bound).
func (t *Translator) translateValues(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Values) (*Fragment, error) {
	var toResolve []sqlcore.Term
	seen := map[sqlcore.CacheKey]bool{}
	for _, row := range n.Rows {
		for _, term := range row {
			if term == nil {
				continue
			}
			if k := term.Key(); !seen[k] {
				seen[k] = true
				toResolve = append(toResolve, *term)
			}
		}
	}
	resolved, err := t.ResolveBatch(ctx, toResolve)
	if err != nil {
		return nil, err
	}

	rows := n.Rows
	forceEmpty := len(rows) == 0
	if forceEmpty {
		rows = [][]*sqlcore.Term{make([]*sqlcore.Term, len(n.Vars))}
	}

	tuples := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row)*5)
		for _, term := range row {
			if term == nil {
				cells = append(cells, "NULL", "NULL", "NULL", "NULL", "NULL")
				continue
			}
			idExpr := IDExprFor(resolved, *term)
			kind := string([]byte{byte(term.Kind)})
			lang := "NULL"
			if term.Lang != "" {
				lang = sqlcore.QuoteStringLiteral(term.Lang)
			}
			dt := "NULL"
			if term.EffectiveDatatype() != "" {
				dt = sqlcore.QuoteStringLiteral(term.EffectiveDatatype())
			}
			cells = append(cells,
				idExpr,
				sqlcore.QuoteStringLiteral(term.Text),
				sqlcore.QuoteStringLiteral(kind),
				lang,
				dt)
		}
		tuples = append(tuples, "("+strings.Join(cells, ", ")+")")
	}

	columns := make([]string, 0, len(n.Vars)*5)
	for _, v := range n.Vars {
		columns = append(columns,
			colName(v, "id"), colName(v, "text"), colName(v, "kind"), colName(v, "lang"), colName(v, "dt"))
	}

	subAlias := gen.Next(alias.Subquery)
	from := "(VALUES " + strings.Join(tuples, ", ") + ") AS " + subAlias + "(" + strings.Join(columns, ", ") + ")"

	f := NewFragment()
	f.SetFrom(from, subAlias)
	if forceEmpty {
		f.AddWhere("1 = 0")
	}
	for _, v := range n.Vars {
		f.Vars[v] = VarBinding{
			IDExpr:       qualify(subAlias, colName(v, "id")),
			TextExpr:     qualify(subAlias, colName(v, "text")),
			KindExpr:     qualify(subAlias, colName(v, "kind")),
			LangExpr:     qualify(subAlias, colName(v, "lang")),
			DatatypeExpr: qualify(subAlias, colName(v, "dt")),
		}
	}
	return f, nil
}
