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
	aliasgen "github.com/vital-ai/vitalgraph-sparql/internal/alias"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

type occurrence struct {
	alias string
	pos   byte
}

// translateBGP implements spec §4.3's BGP handler.
func (t *Translator) translateBGP(ctx *sqlcore.Context, gen *aliasgen.Generator, bgp *algebra.BGP, gctx GraphContext) (*Fragment, error) {
	f := NewFragment()

	if len(bgp.Patterns) == 0 {
		// Boundary behaviour (spec §8): an empty BGP returns one solution
		// with no bindings.
		emptyAlias := gen.Next(aliasgen.Subquery)
		f.SetFrom("(SELECT 1 AS dual) AS "+emptyAlias, emptyAlias)
		return f, nil
	}

	resolved, err := t.ResolveBatch(ctx, CollectBoundTerms(bgp))
	if err != nil {
		return nil, err
	}

	firstOccurrence := map[string]occurrence{}

	for i, tp := range bgp.Patterns {
		qAlias := gen.NextQuad()
		tableRef := t.quadTableRef(qAlias)
		if i == 0 {
			f.SetFrom(tableRef, qAlias)
		} else {
			f.AddJoin("CROSS JOIN "+tableRef, qAlias, false)
		}

		// An enclosing GRAPH handler's constraint applies to every quad
		// alias in this BGP (spec §4.3 BGP: "When an explicit graph
		// constraint has been supplied ... apply it to every quad alias").
		if gctx.Fixed {
			if gctx.NeverMatch {
				f.AddWhere("1 = 0")
			} else {
				f.AddWhere(qualify(qAlias, "g_id") + " = " + gctx.IDExpr)
			}
		} else if gctx.VarName != "" {
			if prior, ok := firstOccurrence[gctx.VarName]; ok {
				f.AddWhere(qualify(qAlias, "g_id") + " = " + qualify(prior.alias, quadIDColumn(prior.pos)))
			} else {
				firstOccurrence[gctx.VarName] = occurrence{alias: qAlias, pos: 'g'}
				termAlias := gen.NextTerm('g')
				join := "JOIN " + t.termTableRef(termAlias) + " ON " +
					qualify(termAlias, "term_id") + " = " + qualify(qAlias, "g_id")
				f.AddJoin(join, termAlias, false)
				f.Vars[gctx.VarName] = VarBinding{
					IDExpr:    qualify(qAlias, "g_id"),
					TermAlias: termAlias,
				}
			}
		}

		positions := [3]struct {
			pt  algebra.PatternTerm
			pos byte
		}{
			{tp.Subject, 's'},
			{tp.Predicate, 'p'},
			{tp.Object, 'o'},
		}

		for _, p := range positions {
			if !p.pt.IsVar() {
				idExpr := IDExprFor(resolved, *p.pt.Bound)
				f.AddWhere(qualify(qAlias, quadIDColumn(p.pos)) + " = " + idExpr)
				continue
			}

			varName := p.pt.Var
			if varName == "" {
				continue
			}

			if prior, ok := firstOccurrence[varName]; ok {
				// Repeated variables within a BGP are enforced by
				// equality predicates between the corresponding id
				// columns of their quad aliases, not by re-joining the
				// term table (spec §4.3).
				f.AddWhere(qualify(qAlias, quadIDColumn(p.pos)) + " = " + qualify(prior.alias, quadIDColumn(prior.pos)))
				continue
			}

			firstOccurrence[varName] = occurrence{alias: qAlias, pos: p.pos}

			// spec §9's resolved Open Question: no ad-hoc "literal
			// predicate" list; always join the term table since a
			// variable's kind is not statically knowable.
			termAlias := gen.NextTerm(p.pos)
			join := "JOIN " + t.termTableRef(termAlias) + " ON " +
				qualify(termAlias, "term_id") + " = " + qualify(qAlias, quadIDColumn(p.pos))
			f.AddJoin(join, termAlias, false)

			f.Vars[varName] = VarBinding{
				IDExpr:    qualify(qAlias, quadIDColumn(p.pos)),
				TermAlias: termAlias,
			}
		}
	}

	return f, nil
}
