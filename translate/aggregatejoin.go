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
	"github.com/vital-ai/vitalgraph-sparql/aggregate"
	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// translateAggregateJoin implements spec §4.3's AggregateJoin handler:
// each spec §4.4 aggregate becomes a scalar SQL aggregate expression
// bound to its result variable. With no sibling Group, the fragment's
// rows aggregate as a single implicit group (GroupBy stays empty).
func (t *Translator) translateAggregateJoin(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.AggregateJoin, gctx GraphContext) (*Fragment, error) {
	f, err := t.Translate(ctx, gen, n.Child, gctx)
	if err != nil {
		return nil, err
	}

	for _, agg := range n.Aggregates {
		sqlExpr, err := t.lowerAggregate(ctx, gen, f, agg)
		if err != nil {
			return nil, err
		}
		f.Vars[agg.ResultVar] = VarBinding{IDExpr: sqlExpr, IsAggregate: true}
	}
	return f, nil
}

func (t *Translator) lowerAggregate(ctx *sqlcore.Context, gen *alias.Generator, f *Fragment, agg algebra.Aggregate) (string, error) {
	if agg.Func == algebra.AggCountStar {
		return "COUNT(*)", nil
	}

	arg, err := t.lowerValue(ctx, gen, f, agg.Arg)
	if err != nil {
		return "", err
	}

	name, numeric := aggregate.SQLName(agg.Func)
	if name == "" {
		return "", sqlcore.ErrUnsupported.New("aggregate function")
	}
	if numeric {
		arg = numericExpr(arg)
	}

	distinct := ""
	if agg.Distinct {
		distinct = "DISTINCT "
	}

	if agg.Func == algebra.AggGroupConcat {
		sep := agg.Separator
		if sep == "" {
			sep = " "
		}
		return "STRING_AGG(" + distinct + arg + ", " + sqlcore.QuoteStringLiteral(sep) + ")", nil
	}

	return name + "(" + distinct + arg + ")", nil
}
