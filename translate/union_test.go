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
)

func TestTranslateUnion_ExposesVarsFromEitherSide(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("a"))
	right := oneTriple(v("s"), "http://ex/p2", v("b"))
	u := &algebra.Union{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), u, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "s")
	require.Contains(t, f.Vars, "a")
	require.Contains(t, f.Vars, "b")
	require.Contains(t, f.From, "UNION ALL")
}

func TestTranslateUnion_BranchPadsMissingVarsWithNull(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("a"))
	right := oneTriple(v("s"), "http://ex/p2", v("b"))

	leftFrag, err := tr.Translate(newTestCtx(), newGen().Derive("l"), left, GraphContext{})
	require.NoError(t, err)
	rightFrag, err := tr.Translate(newTestCtx(), newGen().Derive("r"), right, GraphContext{})
	require.NoError(t, err)

	vars := unionVars(leftFrag, rightFrag)
	branch := selectBranch(leftFrag, vars)
	require.Contains(t, branch, "NULL AS "+colName("b", "id"))
}

func TestTranslateMinus_NoSharedVarsIsNoOp(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("a"))
	right := oneTriple(v("x"), "http://ex/p2", v("y"))
	m := &algebra.Minus{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), m, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "s")
	require.Contains(t, f.Vars, "a")
	for _, w := range f.Where {
		require.NotContains(t, w, "NOT EXISTS")
	}
}

func TestTranslateMinus_SharedVarsRendersNotExists(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("a"))
	right := oneTriple(v("s"), "http://ex/p2", v("b"))
	m := &algebra.Minus{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), m, GraphContext{})
	require.NoError(t, err)
	joined := strings.Join(f.Where, " | ")
	require.Contains(t, joined, "NOT EXISTS")
}
