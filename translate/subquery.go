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

// translateSubquery implements spec §4.3's Subquery handler: a nested
// SELECT is fully assembled (its own DISTINCT/GROUP BY/ORDER BY/LIMIT
// all apply before the outer query sees it) and embedded as a derived
// table exposing the same quintuple column convention as every other
// row source.
func (t *Translator) translateSubquery(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Subquery) (*Fragment, error) {
	inner := gen.Derive("sub")
	rendered, err := t.AssembleSelect(ctx, inner, n.Child, GraphContext{})
	if err != nil {
		return nil, err
	}

	subAlias := gen.Next(alias.Subquery)
	columns := make([]string, 0, len(rendered.Vars)*5)
	for _, v := range rendered.Vars {
		columns = append(columns, colName(v, "id"), colName(v, "text"), colName(v, "kind"), colName(v, "lang"), colName(v, "dt"))
	}

	f := NewFragment()
	f.SetFrom("("+rendered.SQL+") AS "+subAlias+"("+strings.Join(columns, ", ")+")", subAlias)
	for _, v := range rendered.Vars {
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
