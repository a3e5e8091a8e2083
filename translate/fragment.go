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

// Package translate is the pattern translator of spec §4.3: it walks an
// algebra.Node tree and produces SQL FROM/JOIN/WHERE fragments plus a
// variable map, per handler. This is "the heart of the core" (spec §2's
// component table, 28% share).
package translate

import (
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/expr"
)

// JoinClause is one already-rendered `JOIN ... ON ...` (or `CROSS JOIN
// ...`) clause, in emission order.
type JoinClause struct {
	SQL string
	// LeftJoin marks a clause that must be emitted as LEFT JOIN rather
	// than an inner join; set when this clause sits inside an OPTIONAL's
	// right-hand side (spec §4.3 LeftJoin: "All regular joins originating
	// in the optional side are rewritten to LEFT joins").
	LeftJoin bool
}

// VarBinding records how one SPARQL variable maps to SQL at the current
// point in the walk (spec §4.3's var_map).
type VarBinding struct {
	// IDExpr is the SQL expression for this variable's term id. Always
	// present once a variable is bound to anything (sameTerm, joins,
	// equality all key off it). For an aggregate or BIND result
	// variable, IDExpr is instead the full scalar SQL expression
	// (COUNT(...), SUM(...), an arithmetic BIND expression, ...) — see
	// IsAggregate.
	IDExpr string
	// TermAlias is the alias of a joined term-table row exposing
	// term_text/term_kind/term_lang/term_datatype for this variable,
	// when the row follows that plain convention (spec §4.3 BGP/Path).
	// Leave empty and use the Text/Kind/Lang/DatatypeExpr fields
	// instead when a combinator (e.g. UNION) materializes its own
	// differently-shaped row source.
	TermAlias string
	// TextExpr, KindExpr, LangExpr, DatatypeExpr override the
	// TermAlias-derived column references when set. Used by combinators
	// whose output columns don't follow the `alias.term_*` convention.
	TextExpr, KindExpr, LangExpr, DatatypeExpr string
	// IsAggregate marks IDExpr as an aggregate/BIND scalar expression
	// rather than a term-id column, so the HAVING detector
	// (referencesOnlyAggregates) and the SELECT-list builder both know to treat it
	// specially.
	IsAggregate bool
}

// ToExprBinding resolves vb's column references, falling back to the
// `alias.term_*` convention when no explicit override was set.
func (vb VarBinding) ToExprBinding() expr.Binding {
	b := expr.Binding{
		IDExpr:       vb.IDExpr,
		TextExpr:     vb.TextExpr,
		KindExpr:     vb.KindExpr,
		LangExpr:     vb.LangExpr,
		DatatypeExpr: vb.DatatypeExpr,
		IsAggregate:  vb.IsAggregate,
	}
	if vb.TermAlias != "" {
		if b.TextExpr == "" {
			b.TextExpr = vb.TermAlias + ".term_text"
		}
		if b.KindExpr == "" {
			b.KindExpr = vb.TermAlias + ".term_kind"
		}
		if b.LangExpr == "" {
			b.LangExpr = vb.TermAlias + ".term_lang"
		}
		if b.DatatypeExpr == "" {
			b.DatatypeExpr = vb.TermAlias + ".term_datatype"
		}
	}
	return b
}

// Fragment is the 4-tuple spec §4.3 defines for every handler's return
// value: a FROM root, WHERE predicates, ordered JOINs, and a var map.
type Fragment struct {
	From string

	Joins []JoinClause
	Where []string
	// Having collects predicates that reference only aggregate result
	// expressions (spec §4.3 Filter handler / §4.6 HAVING detection).
	Having []string
	// GroupBy holds the grouping key expressions, set by the Group
	// handler (spec §4.3). Empty means no explicit grouping; an
	// AggregateJoin with no sibling Group still aggregates over the
	// entire fragment as a single implicit group.
	GroupBy []string

	Vars map[string]VarBinding

	// declared tracks every alias this fragment itself introduced via
	// From/Joins, so LeftJoin translation can tell which aliases
	// referenced by the optional side's predicates are "foreign" (must be
	// hooked up with an explicit LEFT JOIN ON clause) versus "native"
	// (already declared by that side's own FROM/JOIN list).
	declared map[string]bool
}

// NewFragment returns an empty Fragment ready to be populated.
func NewFragment() *Fragment {
	return &Fragment{Vars: map[string]VarBinding{}, declared: map[string]bool{}}
}

// SetFrom sets the FROM root and marks alias as declared.
func (f *Fragment) SetFrom(sql, alias string) {
	f.From = sql
	f.declared[alias] = true
}

// AddJoin appends a join clause and marks alias as declared.
func (f *Fragment) AddJoin(sqlText, alias string, leftJoin bool) {
	f.Joins = append(f.Joins, JoinClause{SQL: sqlText, LeftJoin: leftJoin})
	f.declared[alias] = true
}

// AddWhere appends a WHERE predicate, ignoring empty strings so callers
// can pass through a possibly-absent condition without an `if`.
func (f *Fragment) AddWhere(cond string) {
	if cond != "" {
		f.Where = append(f.Where, cond)
	}
}

// AddHaving appends a HAVING predicate.
func (f *Fragment) AddHaving(cond string) {
	if cond != "" {
		f.Having = append(f.Having, cond)
	}
}

// Declares reports whether this fragment itself introduced alias.
func (f *Fragment) Declares(alias string) bool {
	return f.declared[alias]
}

// DeclaredAliases returns a copy of the set of aliases this fragment
// itself introduced.
func (f *Fragment) DeclaredAliases() map[string]bool {
	out := make(map[string]bool, len(f.declared))
	for k := range f.declared {
		out[k] = true
	}
	return out
}

// MarkDeclared records that alias is considered native to this fragment,
// used when a combinator (Join, Union) folds a child fragment's joins
// into a parent and needs to carry over its declared-alias bookkeeping.
func (f *Fragment) MarkDeclared(alias string) {
	f.declared[alias] = true
}

// renderJoinClause renders one JoinClause. j.SQL already carries its verb
// ("JOIN ... ON ..." or "CROSS JOIN ..."); when LeftJoin promotes it to an
// outer join, "JOIN"/"CROSS JOIN" both collapse to a LEFT JOIN, padding a
// bare CROSS JOIN with a trivial "ON 1=1" since LEFT JOIN requires an ON.
func renderJoinClause(j JoinClause) string {
	if !j.LeftJoin {
		return j.SQL
	}
	switch {
	case strings.HasPrefix(j.SQL, "CROSS JOIN "):
		return "LEFT JOIN " + strings.TrimPrefix(j.SQL, "CROSS JOIN ") + " ON 1 = 1"
	case strings.HasPrefix(j.SQL, "JOIN "):
		return "LEFT " + j.SQL
	default:
		return j.SQL
	}
}

// RenderExists renders f as a bare existence subquery, `SELECT 1 FROM
// ... [JOIN ...] [WHERE ...]`, for use inside an EXISTS()/NOT EXISTS()
// boolean expression (spec §4.5). It never needs the full SELECT-list,
// DISTINCT, GROUP BY, or ORDER BY assembly the outer query uses.
func (f *Fragment) RenderExists() string {
	var b []byte
	b = append(b, "SELECT 1 FROM "...)
	b = append(b, f.From...)
	for _, j := range f.Joins {
		b = append(b, ' ')
		b = append(b, renderJoinClause(j)...)
	}
	if len(f.Where) > 0 {
		b = append(b, " WHERE "...)
		for i, w := range f.Where {
			if i > 0 {
				b = append(b, " AND "...)
			}
			b = append(b, '(')
			b = append(b, w...)
			b = append(b, ')')
		}
	}
	return string(b)
}

// AdoptFrom absorbs a child fragment's FROM (as a CROSS JOIN), JOINs,
// WHERE, HAVING, and declared aliases into f, without touching f.Vars.
// Used by Join and other combinators whose two sides are otherwise
// independent.
func (f *Fragment) AdoptFrom(child *Fragment, leftJoinAll bool) {
	f.Joins = append(f.Joins, JoinClause{SQL: "CROSS JOIN " + child.From, LeftJoin: leftJoinAll})
	for _, j := range child.Joins {
		lj := j.LeftJoin || leftJoinAll
		f.Joins = append(f.Joins, JoinClause{SQL: j.SQL, LeftJoin: lj})
	}
	f.Where = append(f.Where, child.Where...)
	f.Having = append(f.Having, child.Having...)
	for a := range child.declared {
		f.declared[a] = true
	}
}
