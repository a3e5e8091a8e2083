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

package algebra

// Expr is a SPARQL expression node (spec §4.5). Operators are carried as
// the raw strings a parser would hand back ("+", "=", "IN", ...). Package
// expr matches on these strings directly when lowering; they are not
// converted to an enum type anywhere, so this package stays an
// uninterpreted mirror of whatever a parser produces.
type Expr interface {
	isExpr()
}

// Var references a SPARQL variable.
type Var struct {
	Name string
}

func (*Var) isExpr() {}

// Lit is a constant RDF term used inside an expression (a numeric, string,
// boolean, or IRI literal written directly in the query text).
type Lit struct {
	Term Term
}

func (*Lit) isExpr() {}

// UnaryOp is a prefix operator: "!", "-" (numeric negation), "+" (numeric
// unary plus).
type UnaryOp struct {
	Op  string
	Arg Expr
}

func (*UnaryOp) isExpr() {}

// BinaryOp is an infix operator: "=", "!=", "<", "<=", ">", ">=", "&&",
// "||", "+", "-", "*", "/".
type BinaryOp struct {
	Op          string
	Left, Right Expr
}

func (*BinaryOp) isExpr() {}

// InExpr is `expr IN (list)` / `expr NOT IN (list)`.
type InExpr struct {
	Arg    Expr
	List   []Expr
	Negate bool
}

func (*InExpr) isExpr() {}

// FuncCall is every named SPARQL function/built-in other than the above:
// BOUND, COALESCE, STR, LCASE, UCASE, STRLEN, SUBSTR, REPLACE, CONTAINS,
// STRSTARTS, STRENDS, STRBEFORE, STRAFTER, CONCAT, ENCODE_FOR_URI, REGEX,
// ABS, CEIL, FLOOR, ROUND, RAND, isURI, isIRI, isLITERAL, isNUMERIC,
// isBLANK, LANG, DATATYPE, URI, IRI, STRDT, STRLANG, BNODE, NOW, YEAR,
// MONTH, DAY, HOURS, MINUTES, SECONDS, MD5, SHA1, SHA256, SHA384, SHA512,
// sameTerm.
type FuncCall struct {
	Name string
	Args []Expr
}

func (*FuncCall) isExpr() {}

// ExistsExpr is EXISTS { pattern } / NOT EXISTS { pattern }.
type ExistsExpr struct {
	Negate  bool
	Pattern Node
}

func (*ExistsExpr) isExpr() {}

// AggregateRef references an AggregateJoin result variable (`__agg_n__`)
// or a Group-by variable from within a Filter/OrderBy expression, so the
// HAVING detection in package translate can recognise it without
// re-walking the whole tree.
type AggregateRef struct {
	Var string
}

func (*AggregateRef) isExpr() {}
