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

// Package result marshals backend rows produced by a translated query
// back into the four SPARQL result shapes spec §4.8 names: a solution
// sequence (SELECT), an RDF graph (CONSTRUCT), a boolean (ASK), and a
// triple sequence (DESCRIBE).
package result

import (
	"github.com/spf13/cast"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Solution is one SPARQL result row: variable name to bound term. A
// variable absent from the map was unbound in this row (spec §4.8: "a
// null SQL column becomes an unbound variable in the solution").
type Solution map[string]sqlcore.Term

// DecodeTerm reconstructs a Term from one variable's (text, kind, lang,
// dt) column quintuple (minus the id column, which callers use only to
// decide variable order). kind is the term_kind column ('U'/'L'/'B'); a
// nil kind means the variable was unbound. Column values arrive as
// driver-native interface{} (string, []byte, or nil depending on the
// backend's driver), so cast.To* coerces them uniformly rather than
// assuming a concrete Go type.
func DecodeTerm(text, kind, lang, dt interface{}) (sqlcore.Term, bool) {
	if kind == nil {
		return sqlcore.Term{}, false
	}
	k := sqlcore.TermKind(cast.ToString(kind)[0])
	txt := cast.ToString(text)
	switch k {
	case sqlcore.IRIKind:
		return sqlcore.IRI(txt), true
	case sqlcore.BlankKind:
		return sqlcore.BlankNode(txt), true
	case sqlcore.LiteralKind:
		if lang != nil && cast.ToString(lang) != "" {
			return sqlcore.LangLiteral(txt, cast.ToString(lang)), true
		}
		if dt != nil && cast.ToString(dt) != "" {
			return sqlcore.TypedLiteral(txt, cast.ToString(dt)), true
		}
		return sqlcore.PlainLiteral(txt), true
	default:
		return sqlcore.Term{}, false
	}
}

// DecodeRow splits row into its per-variable quintuples (in the order
// vars lists them — the same order translate.AssembleSelect's Rendered
// produced them) and builds the resulting Solution.
func DecodeRow(row sqlcore.Row, vars []string) Solution {
	sol := make(Solution, len(vars))
	for i, name := range vars {
		base := i * 5
		if base+4 >= len(row) {
			break
		}
		// row[base+0] is the id column; only text/kind/lang/dt are needed
		// to reconstruct the term.
		if term, ok := DecodeTerm(row[base+1], row[base+2], row[base+3], row[base+4]); ok {
			sol[name] = term
		}
	}
	return sol
}
