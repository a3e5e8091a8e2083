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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func TestTranslateBGP_SingleTriple(t *testing.T) {
	tr := newTestTranslator()
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: v("s"), Predicate: b(sqlcore.IRI("http://ex/name")), Object: v("o")},
	}}

	f, err := tr.Translate(newTestCtx(), newGen(), bgp, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "s")
	require.Contains(t, f.Vars, "o")
	require.NotContains(t, f.Vars, "p")
	require.Contains(t, f.From, `"quad"`)
	require.Len(t, f.Joins, 2) // s term join + o term join; p is bound so no term join needed
}

func TestTranslateBGP_RepeatedVariableJoinsOnSameColumn(t *testing.T) {
	tr := newTestTranslator()
	// ?x :knows ?x  -- same variable in subject and object position.
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: v("x"), Predicate: b(sqlcore.IRI("http://ex/knows")), Object: v("x")},
	}}

	f, err := tr.Translate(newTestCtx(), newGen(), bgp, GraphContext{})
	require.NoError(t, err)
	require.Len(t, f.Where, 2) // predicate id equality + s_id = o_id self-join
	joined := strings.Join(f.Where, " | ")
	require.Contains(t, joined, "s_id")
	require.Contains(t, joined, "o_id")
}

func TestTranslateBGP_TwoPatternsShareVariable(t *testing.T) {
	tr := newTestTranslator()
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: v("s"), Predicate: b(sqlcore.IRI("http://ex/p1")), Object: v("mid")},
		{Subject: v("mid"), Predicate: b(sqlcore.IRI("http://ex/p2")), Object: v("o")},
	}}

	f, err := tr.Translate(newTestCtx(), newGen(), bgp, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "s")
	require.Contains(t, f.Vars, "mid")
	require.Contains(t, f.Vars, "o")
	// second occurrence of "mid" compiles to an equality predicate, not a
	// second term-table join for it.
	midJoins := 0
	for _, j := range f.Joins {
		if strings.Contains(j.SQL, "o_term") || strings.Contains(j.SQL, "s_term") {
			midJoins++
		}
	}
	require.Equal(t, 3, midJoins) // s, o(mid-as-object); mid's second (subject) occurrence reuses the existing binding, o
}

func TestTranslateBGP_EmptyIsTrivialTrue(t *testing.T) {
	tr := newTestTranslator()
	f, err := tr.Translate(newTestCtx(), newGen(), &algebra.BGP{}, GraphContext{})
	require.NoError(t, err)
	require.Empty(t, f.Vars)
	require.Contains(t, f.From, "dual")
}

func TestTranslateBGP_FixedGraphConstrainsEveryQuad(t *testing.T) {
	tr := newTestTranslator("http://ex/g1")
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: v("s"), Predicate: b(sqlcore.IRI("http://ex/p")), Object: v("o")},
	}}
	f, err := tr.Translate(newTestCtx(), newGen(), bgp, GraphContext{Fixed: true, IDExpr: "42"})
	require.NoError(t, err)
	require.Contains(t, strings.Join(f.Where, " "), "g_id = 42")
}

func TestTranslateBGP_NeverMatchGraph(t *testing.T) {
	tr := newTestTranslator()
	bgp := &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: v("s"), Predicate: b(sqlcore.IRI("http://ex/p")), Object: v("o")},
	}}
	f, err := tr.Translate(newTestCtx(), newGen(), bgp, GraphContext{Fixed: true, NeverMatch: true})
	require.NoError(t, err)
	require.Contains(t, f.Where, "1 = 0")
}
