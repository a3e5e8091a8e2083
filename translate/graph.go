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

// translateGraph implements spec §4.3's Graph handler. A fixed IRI
// resolves to a concrete graph id (or a never-match constraint when the
// graph is unknown, per spec §4.7); a variable instead forces every
// quad alias the child pattern introduces to agree on one g_id and
// binds it to that variable.
func (t *Translator) translateGraph(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Graph, gctx GraphContext) (*Fragment, error) {
	var childCtx GraphContext

	if n.Term.IsVar() {
		childCtx = GraphContext{VarName: n.Term.Var}
	} else {
		exists, err := t.Graphs.Exists(ctx, t.Space, n.Term.Bound.Text)
		if err != nil {
			return nil, err
		}
		if !exists {
			childCtx = GraphContext{Fixed: true, NeverMatch: true}
		} else {
			resolved, err := t.ResolveBatch(ctx, []sqlcore.Term{*n.Term.Bound})
			if err != nil {
				return nil, err
			}
			childCtx = GraphContext{Fixed: true, IDExpr: IDExprFor(resolved, *n.Term.Bound)}
		}
	}

	return t.Translate(ctx, gen, n.Child, childCtx)
}
