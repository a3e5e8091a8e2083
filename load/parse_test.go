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

package load

import (
	"testing"

	"github.com/stretchr/testify/require"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func TestParseNTriples_SimpleTriple(t *testing.T) {
	doc := `<http://ex/a> <http://ex/knows> <http://ex/b> .` + "\n"
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Len(t, triples, 1)
	require.Equal(t, sqlcore.IRI("http://ex/a"), triples[0][0])
	require.Equal(t, sqlcore.IRI("http://ex/knows"), triples[0][1])
	require.Equal(t, sqlcore.IRI("http://ex/b"), triples[0][2])
}

func TestParseNTriples_BlankNodeSubject(t *testing.T) {
	doc := `_:b0 <http://ex/knows> <http://ex/b> .`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, sqlcore.BlankNode("b0"), triples[0][0])
}

func TestParseNTriples_PlainLiteralObject(t *testing.T) {
	doc := `<http://ex/a> <http://ex/name> "hello" .`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, sqlcore.PlainLiteral("hello"), triples[0][2])
}

func TestParseNTriples_LangTaggedLiteralObject(t *testing.T) {
	doc := `<http://ex/a> <http://ex/name> "hello"@en .`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, sqlcore.LangLiteral("hello", "en"), triples[0][2])
}

func TestParseNTriples_TypedLiteralObject(t *testing.T) {
	doc := `<http://ex/a> <http://ex/age> "3"^^<http://www.w3.org/2001/XMLSchema#integer> .`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, sqlcore.TypedLiteral("3", "http://www.w3.org/2001/XMLSchema#integer"), triples[0][2])
}

func TestParseNTriples_SkipsCommentsAndBlankLines(t *testing.T) {
	doc := "# a comment\n\n<http://ex/a> <http://ex/p> <http://ex/b> .\n"
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Len(t, triples, 1)
}

func TestParseNTriples_MultipleLines(t *testing.T) {
	doc := `<http://ex/a> <http://ex/p> <http://ex/b> .
<http://ex/b> <http://ex/p> <http://ex/c> .
`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Len(t, triples, 2)
}

func TestParseNTriples_EscapedQuoteInLiteral(t *testing.T) {
	doc := `<http://ex/a> <http://ex/name> "say \"hi\"" .`
	triples, err := ParseNTriples([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, sqlcore.PlainLiteral(`say "hi"`), triples[0][2])
}

func TestParseNTriples_UnterminatedIRIIsError(t *testing.T) {
	doc := `<http://ex/a` + "\n"
	_, err := ParseNTriples([]byte(doc))
	require.Error(t, err)
}
