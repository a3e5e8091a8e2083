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
	"strconv"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// qualify builds an `alias.column` reference.
func qualify(alias, column string) string { return alias + "." + column }

// quadIDColumn returns the id column name for a quad position.
func quadIDColumn(pos byte) string {
	switch pos {
	case 's':
		return "s_id"
	case 'p':
		return "p_id"
	case 'o':
		return "o_id"
	case 'g':
		return "g_id"
	default:
		panic("translate: unknown quad position " + string(pos))
	}
}

// quadTableRef renders `"quad_table" AS alias`.
func (t *Translator) quadTableRef(tableAlias string) string {
	return sqlcore.QuoteIdent(t.Schema.QuadTable) + " AS " + tableAlias
}

// termTableRef renders `"term_table" AS alias`.
func (t *Translator) termTableRef(tableAlias string) string {
	return sqlcore.QuoteIdent(t.Schema.TermTable) + " AS " + tableAlias
}
