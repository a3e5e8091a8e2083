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

func TestTranslateLeftJoin_FoldsIntoLeftJoinOn(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("name"))
	right := oneTriple(v("s"), "http://ex/p2", v("age"))
	lj := &algebra.LeftJoin{Left: left, Right: right}

	f, err := tr.Translate(newTestCtx(), newGen(), lj, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "name")
	require.Contains(t, f.Vars, "age")

	sawLeft := false
	for _, j := range f.Joins {
		if j.LeftJoin {
			sawLeft = true
			require.True(t, strings.HasPrefix(strings.ToUpper(renderJoinClause(j)), "LEFT JOIN") ||
				strings.Contains(strings.ToUpper(renderJoinClause(j)), "LEFT JOIN"))
		}
	}
	require.True(t, sawLeft, "expected at least one LEFT JOIN clause in the rendered optional side")
}

func TestTranslateLeftJoin_OptionalSideTermJoinIsPromotedToLeftJoin(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("name"))
	// the optional side's object variable forces its own term-table join;
	// that join must be promoted to LEFT JOIN too, or a non-matching left
	// row gets eliminated by it instead of padded with NULLs.
	right := oneTriple(v("s"), "http://ex/p2", v("age"))
	lj := &algebra.LeftJoin{Left: left, Right: right}

	leftFrag, err := tr.Translate(newTestCtx(), newGen().Derive("l"), left, GraphContext{})
	require.NoError(t, err)
	leftJoinCount := len(leftFrag.Joins)

	f, err := tr.translateLeftJoin(newTestCtx(), newGen(), lj, GraphContext{})
	require.NoError(t, err)

	require.Greater(t, len(f.Joins), leftJoinCount+1, "expected the LEFT JOIN right.From clause plus at least one promoted join from the optional side")
	for _, j := range f.Joins[leftJoinCount:] {
		require.True(t, j.LeftJoin, "every join on the optional side must be promoted to LEFT JOIN: %s", j.SQL)
	}
}

func TestTranslateLeftJoin_AttachedFilterFoldedIntoOn(t *testing.T) {
	tr := newTestTranslator()
	left := oneTriple(v("s"), "http://ex/p1", v("name"))
	right := oneTriple(v("s"), "http://ex/p2", v("age"))
	// OPTIONAL { ... FILTER(BOUND(?age)) }
	lj := &algebra.LeftJoin{Left: left, Right: right, Expr: &algebra.FuncCall{Name: "BOUND", Args: []algebra.Expr{&algebra.Var{Name: "age"}}}}

	gen := newGen()
	f, err := tr.translateLeftJoin(newTestCtx(), gen, lj, GraphContext{})
	require.NoError(t, err)
	// the ON-folded predicate must live on a LeftJoin-flagged clause, not
	// in the outer WHERE (which would wrongly eliminate non-matches).
	for _, w := range f.Where {
		require.NotContains(t, w, "IS NOT NULL")
	}
}
