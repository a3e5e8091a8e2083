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

// translateExtend implements spec §4.3's Extend (BIND) handler. The
// bound variable has no term-table row of its own: it is carried as a
// bare scalar expression and only materialized into a term row (for
// STR/LANG/DATATYPE use, or for output) by the result marshaller or a
// later handler that needs to join against it.
func (t *Translator) translateExtend(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Extend, gctx GraphContext) (*Fragment, error) {
	f, err := t.Translate(ctx, gen, n.Child, gctx)
	if err != nil {
		return nil, err
	}
	value, err := t.lowerValue(ctx, gen, f, n.Expr)
	if err != nil {
		return nil, err
	}
	f.Vars[n.Var] = VarBinding{IDExpr: value, IsAggregate: true}
	return f, nil
}
