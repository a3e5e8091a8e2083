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

package expr

import (
	"strconv"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

// isNumericDatatype reports whether dt is a datatype this
// lowerer treats as arithmetic-capable.
func isNumericDatatype(dt string) bool {
	switch dt {
	case "http://www.w3.org/2001/XMLSchema#integer",
		"http://www.w3.org/2001/XMLSchema#decimal",
		"http://www.w3.org/2001/XMLSchema#double",
		"http://www.w3.org/2001/XMLSchema#float":
		return true
	default:
		return false
	}
}

// literalText renders a constant term embedded directly in an
// expression (spec §4.5's Lit leaf) as a SQL scalar: bare numerals for
// numeric datatypes and booleans, a quoted string otherwise.
func literalText(term sql.Term) string {
	if term.Kind != sql.LiteralKind {
		return sql.QuoteStringLiteral(term.Text)
	}
	dt := term.EffectiveDatatype()
	if isNumericDatatype(dt) {
		if _, err := strconv.ParseFloat(term.Text, 64); err == nil {
			return term.Text
		}
	}
	if dt == "http://www.w3.org/2001/XMLSchema#boolean" {
		if term.Text == "true" || term.Text == "1" {
			return "TRUE"
		}
		return "FALSE"
	}
	return sql.QuoteStringLiteral(term.Text)
}

// numericExpr casts a scalar SQL expression to a numeric type for use
// as an arithmetic operand.
func numericExpr(sqlText string) string {
	return "CAST(" + sqlText + " AS DOUBLE PRECISION)"
}

// ebv renders the SPARQL Effective Boolean Value of a scalar SQL
// expression representing a term's text column (spec §4.5): NULL, the
// empty string, the text 'false' and the text '0' are false; every other
// text, including other spellings of zero such as '0.0', is true.
func ebv(textExpr string) string {
	return "(" + textExpr + " IS NOT NULL AND " + textExpr + " <> '' AND " + textExpr + " <> 'false' AND " + textExpr + " <> '0')"
}
