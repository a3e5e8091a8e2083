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

// translateMinus implements spec §4.3's Minus handler: a left solution
// is dropped only if the right side shares at least one variable with
// it and has a "compatible" row (equal on every shared variable). When
// the two sides share no variables, SPARQL MINUS has no effect and the
// right side is not even evaluated against the left.
func (t *Translator) translateMinus(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.Minus, gctx GraphContext) (*Fragment, error) {
	left, err := t.Translate(ctx, gen.Derive("l"), n.Left, gctx)
	if err != nil {
		return nil, err
	}
	right, err := t.Translate(ctx, gen.Derive("r"), n.Right, gctx)
	if err != nil {
		return nil, err
	}

	var shared []string
	for name := range left.Vars {
		if _, ok := right.Vars[name]; ok {
			shared = append(shared, name)
		}
	}
	if len(shared) == 0 {
		return left, nil
	}

	sub := clone(right)
	for _, name := range shared {
		sub.AddWhere(left.Vars[name].IDExpr + " = " + right.Vars[name].IDExpr)
	}

	f := clone(left)
	f.AddWhere("NOT EXISTS (" + sub.RenderExists() + ")")
	return f, nil
}
