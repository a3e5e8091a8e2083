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

// Package aggregate maps spec §4.5's SPARQL aggregate functions onto
// their SQL counterparts. It is kept separate from package translate's
// Fragment/VarBinding plumbing because the mapping itself is pure and
// backend-agnostic, and having it as its own leaf package lets it be
// tested without constructing a Translator.
package aggregate

import "github.com/vital-ai/vitalgraph-sparql/algebra"

// SQLName returns the SQL aggregate function name for fn. Numeric is
// true when the operand must be cast to a numeric type before applying
// the function (SUM/AVG; MIN/MAX and the rest operate on the operand's
// natural text representation).
func SQLName(fn algebra.AggFunc) (name string, numeric bool) {
	switch fn {
	case algebra.AggCount, algebra.AggCountStar:
		return "COUNT", false
	case algebra.AggSum:
		return "SUM", true
	case algebra.AggAvg:
		return "AVG", true
	case algebra.AggMin:
		return "MIN", false
	case algebra.AggMax:
		return "MAX", false
	case algebra.AggSample:
		// SPARQL's SAMPLE has no determinism requirement; MIN over the
		// group's values is a cheap stand-in that still picks a single
		// value bound in every row of the group.
		return "MIN", false
	case algebra.AggGroupConcat:
		return "STRING_AGG", false
	default:
		return "", false
	}
}
