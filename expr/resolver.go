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

// Package expr lowers algebra.Expr trees (spec §4.5's built-in function
// and operator library) into plain SQL boolean/scalar expression text.
// It depends only on a small Resolver interface rather than on package
// translate's Fragment directly, so translate can import expr without a
// cycle: translate.Fragment (and a small adapter around *Translator)
// implements Resolver.
package expr

import (
	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/sql"
)

// Binding is what the lowerer needs to know about a SPARQL variable's
// current SQL representation at the point an expression references it.
// The Text/Kind/Lang/Datatype fields are fully-qualified SQL expressions
// rather than a bare alias, so a binding can point at a plain joined
// term-table row (spec §4.3 BGP) or at a synthetic column produced by a
// combinator like UNION that materializes its own subquery, uniformly.
type Binding struct {
	// IDExpr is the term-id SQL expression (or, for an aggregate/BIND
	// result variable, the full scalar expression).
	IDExpr string
	// TextExpr, KindExpr, LangExpr, DatatypeExpr expose the bound term's
	// text, kind ('U'/'L'/'B'), language tag, and datatype IRI. Empty for
	// an aggregate/BIND result variable, which has no term row.
	TextExpr, KindExpr, LangExpr, DatatypeExpr string
	// IsAggregate marks IDExpr as an already-scalar expression with no
	// backing term row (an aggregate result or a BIND target).
	IsAggregate bool
}

// Resolver is implemented by translate.Fragment (for variable lookups)
// plus a small Translator-backed adapter (for embedded-literal term
// resolution and EXISTS/NOT EXISTS subqueries).
type Resolver interface {
	// ResolveVar looks up a SPARQL variable's current binding.
	ResolveVar(name string) (Binding, bool)
	// ResolveTerm resolves a single embedded literal/IRI/blank node term
	// (not a pattern's bound term, which BGP already resolves in batch)
	// appearing directly inside a FILTER/BIND expression, e.g. the `<iri>`
	// in `sameTerm(?x, <iri>)`. Returns the never-match sentinel id
	// literal if the term is unknown.
	ResolveTerm(term sql.Term) (string, error)
	// LowerExists renders an EXISTS/NOT EXISTS subquery for the given
	// algebra pattern (opaque to this package; passed through unchanged).
	LowerExists(pattern algebra.Node, negate bool) (string, error)
}
