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

// translateGroup implements spec §4.3's Group handler: each grouping
// key becomes both a GROUP BY expression and (for a computed key, `GROUP
// BY (expr AS ?v)`) a freshly bound output variable.
func (t *Translator) translateGroup(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Group, gctx GraphContext) (*Fragment, error) {
	f, err := t.Translate(ctx, gen, n.Child, gctx)
	if err != nil {
		return nil, err
	}

	for _, key := range n.By {
		if key.Expr != nil {
			val, err := t.lowerValue(ctx, gen, f, key.Expr)
			if err != nil {
				return nil, err
			}
			f.GroupBy = append(f.GroupBy, val)
			f.Vars[key.Var] = VarBinding{IDExpr: val, IsAggregate: true}
			continue
		}
		vb, ok := f.Vars[key.Var]
		if !ok {
			return nil, sqlcore.ErrTranslation.New("GROUP BY references unbound variable ?" + key.Var)
		}
		f.GroupBy = append(f.GroupBy, vb.IDExpr)
	}
	return f, nil
}
