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

package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func TestLiteralText_PlainStringIsQuoted(t *testing.T) {
	require.Equal(t, "'hi'", literalText(sqlcore.PlainLiteral("hi")))
}

func TestLiteralText_NumericLiteralIsBareNumeral(t *testing.T) {
	require.Equal(t, "3.5", literalText(sqlcore.TypedLiteral("3.5", "http://www.w3.org/2001/XMLSchema#decimal")))
}

func TestLiteralText_NonNumericParseFallsBackToQuoted(t *testing.T) {
	require.Equal(t, "'notanumber'", literalText(sqlcore.TypedLiteral("notanumber", "http://www.w3.org/2001/XMLSchema#integer")))
}

func TestLiteralText_BooleanTrue(t *testing.T) {
	require.Equal(t, "TRUE", literalText(sqlcore.TypedLiteral("true", "http://www.w3.org/2001/XMLSchema#boolean")))
}

func TestLiteralText_BooleanFalse(t *testing.T) {
	require.Equal(t, "FALSE", literalText(sqlcore.TypedLiteral("false", "http://www.w3.org/2001/XMLSchema#boolean")))
}

func TestLiteralText_IRIIsQuoted(t *testing.T) {
	require.Equal(t, "'http://ex/a'", literalText(sqlcore.IRI("http://ex/a")))
}

func TestNumericExpr_CastsToDouble(t *testing.T) {
	require.Equal(t, "CAST(col AS DOUBLE PRECISION)", numericExpr("col"))
}

func TestEBV_ChecksEmptyZeroFalse(t *testing.T) {
	v := ebv("col")
	require.Contains(t, v, "IS NOT NULL")
	require.Contains(t, v, "<> ''")
	require.Contains(t, v, "<> 'false'")
	require.Contains(t, v, "<> '0'")
}

func TestIsNumericDatatype(t *testing.T) {
	require.True(t, isNumericDatatype("http://www.w3.org/2001/XMLSchema#integer"))
	require.True(t, isNumericDatatype("http://www.w3.org/2001/XMLSchema#double"))
	require.False(t, isNumericDatatype("http://www.w3.org/2001/XMLSchema#string"))
	require.False(t, isNumericDatatype(""))
}
