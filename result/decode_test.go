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

package result

import (
	"testing"

	"github.com/stretchr/testify/require"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func TestDecodeTerm_UnboundWhenKindNil(t *testing.T) {
	_, ok := DecodeTerm("x", nil, nil, nil)
	require.False(t, ok)
}

func TestDecodeTerm_IRI(t *testing.T) {
	term, ok := DecodeTerm("http://ex/a", "U", nil, nil)
	require.True(t, ok)
	require.Equal(t, sqlcore.IRI("http://ex/a"), term)
}

func TestDecodeTerm_BlankNode(t *testing.T) {
	term, ok := DecodeTerm("b1", "B", nil, nil)
	require.True(t, ok)
	require.Equal(t, sqlcore.BlankNode("b1"), term)
}

func TestDecodeTerm_LangLiteral(t *testing.T) {
	term, ok := DecodeTerm("hello", "L", "en", nil)
	require.True(t, ok)
	require.Equal(t, sqlcore.LangLiteral("hello", "en"), term)
}

func TestDecodeTerm_TypedLiteral(t *testing.T) {
	term, ok := DecodeTerm("3", "L", nil, "http://www.w3.org/2001/XMLSchema#integer")
	require.True(t, ok)
	require.Equal(t, sqlcore.TypedLiteral("3", "http://www.w3.org/2001/XMLSchema#integer"), term)
}

func TestDecodeTerm_PlainLiteral(t *testing.T) {
	term, ok := DecodeTerm("hello", "L", nil, nil)
	require.True(t, ok)
	require.Equal(t, sqlcore.PlainLiteral("hello"), term)
}

func TestDecodeRow_SkipsUnboundVariable(t *testing.T) {
	row := sqlcore.Row{
		int64(1), "http://ex/a", "U", nil, nil,
		nil, nil, nil, nil, nil,
	}
	sol := DecodeRow(row, []string{"s", "o"})
	require.Contains(t, sol, "s")
	require.NotContains(t, sol, "o")
}
