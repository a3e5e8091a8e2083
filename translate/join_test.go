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

func oneTriple(subj algebra.PatternTerm, pred string, obj algebra.PatternTerm) *algebra.BGP {
	return &algebra.BGP{Patterns: []algebra.TriplePattern{
		{Subject: subj, Predicate: b(sqlcore.IRI(pred)), Object: obj},
	}}
}

func TestTranslateJoin_SharedVariableBecomesEquality(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("mid"))
	right := oneTriple(v("mid"), "http://ex/p2", v("o"))
	join := &algebra.Join{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), join, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "s")
	require.Contains(t, f.Vars, "mid")
	require.Contains(t, f.Vars, "o")

	found := false
	for _, w := range f.Where {
		if strings.Contains(w, "=") {
			found = true
		}
	}
	require.True(t, found, "expected an equality predicate joining the shared variable")
}

func TestTranslateJoin_IndependentAliasSpaces(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p", v("o"))
	right := oneTriple(v("s2"), "http://ex/p", v("o2"))
	join := &algebra.Join{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), join, GraphContext{})
	require.NoError(t, err)
	// left and right sides mint aliases under distinct derived prefixes
	// ("l_..." / "r_..."), so no alias text collides.
	require.NotEqual(t, f.Vars["s"].IDExpr, f.Vars["s2"].IDExpr)
	require.True(t, strings.Contains(f.From, "l_quad"))
}
