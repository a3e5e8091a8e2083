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

func TestTranslateGraph_KnownIRIConstrainsGID(t *testing.T) {
	tr := newTestTranslator("http://ex/g1")
	child := oneTriple(v("s"), "http://ex/p", v("o"))
	g := &algebra.Graph{Child: child, Term: b(sqlcore.IRI("http://ex/g1"))}

	f, err := tr.Translate(newTestCtx(), newGen(), g, GraphContext{})
	require.NoError(t, err)
	joined := strings.Join(f.Where, " | ")
	require.Contains(t, joined, "g_id =")
}

func TestTranslateGraph_UnknownIRINeverMatches(t *testing.T) {
	tr := newTestTranslator()
	child := oneTriple(v("s"), "http://ex/p", v("o"))
	g := &algebra.Graph{Child: child, Term: b(sqlcore.IRI("http://ex/missing"))}

	f, err := tr.Translate(newTestCtx(), newGen(), g, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Where, "1 = 0")
}

func TestTranslateGraph_VariableBindsGraphVar(t *testing.T) {
	tr := newTestTranslator("http://ex/g1")
	child := oneTriple(v("s"), "http://ex/p", v("o"))
	g := &algebra.Graph{Child: child, Term: v("g")}

	f, err := tr.Translate(newTestCtx(), newGen(), g, GraphContext{})
	require.NoError(t, err)
	require.Contains(t, f.Vars, "g")
}
