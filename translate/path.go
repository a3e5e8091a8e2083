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
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/alias"
	pathpkg "github.com/vital-ai/vitalgraph-sparql/path"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// translatePath implements spec §4.3's Path handler, dispatching to one
// of the property-path compilers below by the path's kind (spec §4.4).
func (t *Translator) translatePath(ctx *sqlcore.Context, gen *alias.Generator, n *algebra.PathPattern, gctx GraphContext) (*Fragment, error) {
	return t.compilePath(ctx, gen, n.Subject, &n.Path, n.Object, gctx)
}

func (t *Translator) compilePath(ctx *sqlcore.Context, gen *alias.Generator, subj algebra.PatternTerm, p *algebra.Path, obj algebra.PatternTerm, gctx GraphContext) (*Fragment, error) {
	switch p.Kind {
	case algebra.PathPredicate:
		return t.compileSimpleStep(ctx, gen, subj, p.Predicate, false, obj, gctx)
	case algebra.PathInverse:
		if p.Sub != nil && p.Sub.Kind == algebra.PathPredicate {
			return t.compileSimpleStep(ctx, gen, subj, p.Sub.Predicate, true, obj, gctx)
		}
		return t.compilePath(ctx, gen.Derive("inv"), obj, p.Sub, subj, gctx)
	case algebra.PathSeq:
		return t.compileSeq(ctx, gen, subj, p, obj, gctx)
	case algebra.PathAlt:
		left, err := t.compilePath(ctx, gen.Derive("l"), subj, p.Left, obj, gctx)
		if err != nil {
			return nil, err
		}
		right, err := t.compilePath(ctx, gen.Derive("r"), subj, p.Right, obj, gctx)
		if err != nil {
			return nil, err
		}
		return unionFragments(gen, left, right), nil
	case algebra.PathNegated:
		return t.compileNegated(ctx, gen, subj, p, obj, gctx)
	case algebra.PathStar, algebra.PathPlus, algebra.PathOpt:
		return t.compileRepeat(ctx, gen, subj, p, obj, gctx)
	default:
		return nil, sqlcore.ErrTranslation.New("unhandled path kind")
	}
}

// compileSimpleStep translates a single (possibly inverted) predicate
// edge by building a synthetic one-triple BGP and delegating to
// translateBGP, reusing its term-binding and graph-constraint logic
// rather than duplicating it (spec §4.4's Predicate/Inverse-of-Predicate
// case).
func (t *Translator) compileSimpleStep(ctx *sqlcore.Context, gen *alias.Generator, subj algebra.PatternTerm, predicate string, inverse bool, obj algebra.PatternTerm, gctx GraphContext) (*Fragment, error) {
	s, o := subj, obj
	if inverse {
		s, o = obj, subj
	}
	predTerm := sqlcore.IRI(predicate)
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{{
		Subject:   s,
		Predicate: algebra.PatternTerm{Bound: &predTerm},
		Object:    o,
	}}}
	return t.translateBGP(ctx, gen, bgp, gctx)
}

// compileSeq translates `left/right` by joining two sub-paths through a
// synthetic intermediate variable connecting left's object to right's
// subject (spec §4.4's Seq case). The synthetic name uses a character no
// SPARQL variable name can start with, so it can never collide with a
// user-visible variable and is simply left unprojected.
func (t *Translator) compileSeq(ctx *sqlcore.Context, gen *alias.Generator, subj algebra.PatternTerm, p *algebra.Path, obj algebra.PatternTerm, gctx GraphContext) (*Fragment, error) {
	mid := algebra.PatternTerm{Var: "$seq_" + gen.Next(alias.Join)}

	left, err := t.compilePath(ctx, gen.Derive("l"), subj, p.Left, mid, gctx)
	if err != nil {
		return nil, err
	}
	right, err := t.compilePath(ctx, gen.Derive("r"), mid, p.Right, obj, gctx)
	if err != nil {
		return nil, err
	}

	f := clone(left)
	f.AdoptFrom(right, false)
	mergeVars(f, right)
	delete(f.Vars, mid.Var)
	return f, nil
}

// compileNegated translates `!(iri1|...|^irik|...)` by splitting the
// excluded predicates into their forward and inverse directions and
// matching each as a quad whose p_id is NOT IN the excluded set (spec
// §4.4's NegatedPropertySet case).
func (t *Translator) compileNegated(ctx *sqlcore.Context, gen *alias.Generator, subj algebra.PatternTerm, p *algebra.Path, obj algebra.PatternTerm, gctx GraphContext) (*Fragment, error) {
	var fwd, inv []string
	for i, pred := range p.Negated {
		if i < len(p.NegatedInverse) && p.NegatedInverse[i] {
			inv = append(inv, pred)
		} else {
			fwd = append(fwd, pred)
		}
	}

	switch {
	case len(fwd) == 0 && len(inv) == 0:
		return nil, sqlcore.ErrTranslation.New("negated property set names no predicates")
	case len(inv) == 0:
		return t.compileNegatedFragment(ctx, gen, subj, obj, fwd, false, gctx)
	case len(fwd) == 0:
		return t.compileNegatedFragment(ctx, gen, subj, obj, inv, true, gctx)
	default:
		left, err := t.compileNegatedFragment(ctx, gen.Derive("l"), subj, obj, fwd, false, gctx)
		if err != nil {
			return nil, err
		}
		right, err := t.compileNegatedFragment(ctx, gen.Derive("r"), subj, obj, inv, true, gctx)
		if err != nil {
			return nil, err
		}
		return unionFragments(gen, left, right), nil
	}
}

// compileNegatedFragment matches one direction of a negated property
// set: a single quad alias constrained to p_id NOT IN (...), with
// subject/object bound to s_id/o_id directly (swapDirection true reads
// the edge backwards, for the `^iri` members of the set).
func (t *Translator) compileNegatedFragment(ctx *sqlcore.Context, gen *alias.Generator, subj, obj algebra.PatternTerm, predTexts []string, swapDirection bool, gctx GraphContext) (*Fragment, error) {
	f := NewFragment()
	qAlias := gen.NextQuad()
	f.SetFrom(t.quadTableRef(qAlias), qAlias)

	if gctx.Fixed {
		if gctx.NeverMatch {
			f.AddWhere("1 = 0")
		} else {
			f.AddWhere(qualify(qAlias, "g_id") + " = " + gctx.IDExpr)
		}
	} else if gctx.VarName != "" {
		termAlias := gen.NextTerm('g')
		f.AddJoin("JOIN "+t.termTableRef(termAlias)+" ON "+qualify(termAlias, "term_id")+" = "+qualify(qAlias, "g_id"), termAlias, false)
		f.Vars[gctx.VarName] = VarBinding{IDExpr: qualify(qAlias, "g_id"), TermAlias: termAlias}
	}

	var bound []sqlcore.Term
	if !subj.IsVar() && subj.Bound != nil {
		bound = append(bound, *subj.Bound)
	}
	if !obj.IsVar() && obj.Bound != nil {
		bound = append(bound, *obj.Bound)
	}
	for _, p := range predTexts {
		bound = append(bound, sqlcore.IRI(p))
	}
	resolved, err := t.ResolveBatch(ctx, bound)
	if err != nil {
		return nil, err
	}

	sPos, oPos := byte('s'), byte('o')
	if swapDirection {
		sPos, oPos = 'o', 's'
	}
	bindEndpoint := func(pos byte, pt algebra.PatternTerm) {
		if pt.IsVar() {
			if existing, ok := f.Vars[pt.Var]; ok {
				f.AddWhere(qualify(qAlias, quadIDColumn(pos)) + " = " + existing.IDExpr)
				return
			}
			termAlias := gen.NextTerm(pos)
			f.AddJoin("JOIN "+t.termTableRef(termAlias)+" ON "+qualify(termAlias, "term_id")+" = "+qualify(qAlias, quadIDColumn(pos)), termAlias, false)
			f.Vars[pt.Var] = VarBinding{IDExpr: qualify(qAlias, quadIDColumn(pos)), TermAlias: termAlias}
		} else {
			f.AddWhere(qualify(qAlias, quadIDColumn(pos)) + " = " + IDExprFor(resolved, *pt.Bound))
		}
	}
	bindEndpoint(sPos, subj)
	bindEndpoint(oPos, obj)

	if len(predTexts) > 0 {
		ids := make([]string, len(predTexts))
		for i, pr := range predTexts {
			ids[i] = IDExprFor(resolved, sqlcore.IRI(pr))
		}
		f.AddWhere(qualify(qAlias, "p_id") + " NOT IN (" + strings.Join(ids, ", ") + ")")
	}
	return f, nil
}

// compileRepeat translates `sub*`, `sub+`, and `sub?` (spec §4.4's
// repetition modifiers). It only supports a sub-path that flattens to a
// plain edge set (path.FlattenSimple) and a fixed or default graph
// context: repetition under a `GRAPH ?g { ... }` variable would need the
// recursive closure to track g_id as an extra per-row column and isn't
// supported (documented scope limit, spec §9).
func (t *Translator) compileRepeat(ctx *sqlcore.Context, gen *alias.Generator, subj algebra.PatternTerm, p *algebra.Path, obj algebra.PatternTerm, gctx GraphContext) (*Fragment, error) {
	if gctx.VarName != "" {
		return nil, sqlcore.ErrUnsupported.New("property path repetition (*, +, ?) inside GRAPH ?var { ... }")
	}

	edges, ok := pathpkg.FlattenSimple(p.Sub)
	if !ok {
		return nil, sqlcore.ErrUnsupported.New("property path repetition (*, +, ?) over a compound sub-path")
	}

	edgeTerms := make([]sqlcore.Term, len(edges))
	for i, e := range edges {
		edgeTerms[i] = sqlcore.IRI(e.Predicate)
	}
	resolvedPreds, err := t.ResolveBatch(ctx, edgeTerms)
	if err != nil {
		return nil, err
	}
	resolvedEdges := make([]pathpkg.ResolvedEdge, len(edges))
	for i, e := range edges {
		resolvedEdges[i] = pathpkg.ResolvedEdge{IDExpr: IDExprFor(resolvedPreds, edgeTerms[i]), Inverse: e.Inverse}
	}

	quadTable := sqlcore.QuoteIdent(t.Schema.QuadTable)
	var graphWhere string
	switch {
	case gctx.Fixed && gctx.NeverMatch:
		graphWhere = "1 = 0"
	case gctx.Fixed:
		graphWhere = "q.g_id = " + gctx.IDExpr
	}

	var endpointTerms []sqlcore.Term
	if !subj.IsVar() && subj.Bound != nil {
		endpointTerms = append(endpointTerms, *subj.Bound)
	}
	if !obj.IsVar() && obj.Bound != nil {
		endpointTerms = append(endpointTerms, *obj.Bound)
	}
	resolvedEndpoints, err := t.ResolveBatch(ctx, endpointTerms)
	if err != nil {
		return nil, err
	}
	var subjID, objID string
	if !subj.IsVar() {
		subjID = IDExprFor(resolvedEndpoints, *subj.Bound)
	}
	if !obj.IsVar() {
		objID = IDExprFor(resolvedEndpoints, *obj.Bound)
	}

	var rowSourceSQL string
	switch p.Kind {
	case algebra.PathPlus:
		cteName := gen.Next(alias.Subquery)
		cte := pathpkg.BuildClosureCTE(cteName, quadTable, resolvedEdges, t.Config.PathMaxDepth, graphWhere)
		rowSourceSQL = cte + " SELECT DISTINCT src_id, dst_id FROM " + cteName
	case algebra.PathOpt:
		rowSourceSQL = pathpkg.BuildEdgeUnion(quadTable, resolvedEdges, graphWhere) +
			"\nUNION ALL\n" + identitySource(subjID, objID, !subj.IsVar(), !obj.IsVar(), quadTable, graphWhere)
	default: // PathStar
		cteName := gen.Next(alias.Subquery)
		cte := pathpkg.BuildClosureCTE(cteName, quadTable, resolvedEdges, t.Config.PathMaxDepth, graphWhere)
		rowSourceSQL = cte + " SELECT DISTINCT src_id, dst_id FROM " + cteName +
			"\nUNION ALL\n" + identitySource(subjID, objID, !subj.IsVar(), !obj.IsVar(), quadTable, graphWhere)
	}

	subAlias := gen.Next(alias.Subquery)
	f := NewFragment()
	f.SetFrom("("+rowSourceSQL+") AS "+subAlias+"(src_id, dst_id)", subAlias)

	if !subj.IsVar() {
		f.AddWhere(qualify(subAlias, "src_id") + " = " + subjID)
	} else {
		termAlias := gen.NextTerm('s')
		f.AddJoin("JOIN "+t.termTableRef(termAlias)+" ON "+qualify(termAlias, "term_id")+" = "+qualify(subAlias, "src_id"), termAlias, false)
		f.Vars[subj.Var] = VarBinding{IDExpr: qualify(subAlias, "src_id"), TermAlias: termAlias}
	}

	switch {
	case !obj.IsVar():
		f.AddWhere(qualify(subAlias, "dst_id") + " = " + objID)
	case subj.IsVar() && subj.Var == obj.Var:
		f.AddWhere(qualify(subAlias, "dst_id") + " = " + qualify(subAlias, "src_id"))
	default:
		termAlias := gen.NextTerm('o')
		f.AddJoin("JOIN "+t.termTableRef(termAlias)+" ON "+qualify(termAlias, "term_id")+" = "+qualify(subAlias, "dst_id"), termAlias, false)
		f.Vars[obj.Var] = VarBinding{IDExpr: qualify(subAlias, "dst_id"), TermAlias: termAlias}
	}

	return f, nil
}

// identitySource renders the zero-length-path contribution (`*`/`?`
// match the reflexive pair (n, n)): anchored at whichever endpoint is
// already bound, or ranging over every node in scope when both ends are
// variables.
func identitySource(subjID, objID string, subjBound, objBound bool, quadTable, graphWhere string) string {
	switch {
	case subjBound:
		return "SELECT " + subjID + " AS src_id, " + subjID + " AS dst_id"
	case objBound:
		return "SELECT " + objID + " AS src_id, " + objID + " AS dst_id"
	default:
		where := ""
		if graphWhere != "" {
			where = " WHERE " + graphWhere
		}
		return "SELECT DISTINCT n AS src_id, n AS dst_id FROM (" +
			"SELECT s_id AS n FROM " + quadTable + " AS q" + where +
			" UNION SELECT o_id AS n FROM " + quadTable + " AS q" + where +
			") AS nodes"
	}
}
