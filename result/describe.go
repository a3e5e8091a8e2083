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
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Describe emits every quad whose subject is one of subjectIDs, in any
// graph, as a flat triple list (spec §4.8: "for each described IRI...
// emit all quads whose subject equals that IRI in any graph", and the
// supplemented behavior that DESCRIBE's response shape is a flat list
// rather than a nested per-subject structure).
func Describe(ctx *sqlcore.Context, backend sqlcore.Backend, schema sqlcore.SpaceSchema, resolver sqlcore.TermResolver, subjectIDs []sqlcore.TermID) ([]Triple, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(subjectIDs))
	for i, id := range subjectIDs {
		ids[i] = strconv.FormatInt(int64(id), 10)
	}
	query := "SELECT s_id, p_id, o_id FROM " + sqlcore.QuoteIdent(schema.QuadTable) +
		" WHERE s_id IN (" + strings.Join(ids, ", ") + ")"

	iter, err := backend.Query(ctx, ctx.Space, query)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "describe query")
	}
	defer iter.Close(ctx)

	type idTriple struct{ s, p, o sqlcore.TermID }
	var rows []idTriple
	lookupSet := map[sqlcore.TermID]bool{}
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sqlcore.ErrBackend.Wrap(err, "describe query")
		}
		t := idTriple{
			s: sqlcore.TermID(cast.ToInt64(row[0])),
			p: sqlcore.TermID(cast.ToInt64(row[1])),
			o: sqlcore.TermID(cast.ToInt64(row[2])),
		}
		rows = append(rows, t)
		lookupSet[t.s] = true
		lookupSet[t.p] = true
		lookupSet[t.o] = true
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lookupIDs := make([]sqlcore.TermID, 0, len(lookupSet))
	for id := range lookupSet {
		lookupIDs = append(lookupIDs, id)
	}
	terms, err := resolver.LookupBatch(ctx, ctx.Space, lookupIDs)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "describe term lookup")
	}

	out := make([]Triple, 0, len(rows))
	for _, t := range rows {
		s, ok1 := terms[t.s]
		p, ok2 := terms[t.p]
		o, ok3 := terms[t.o]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		out = append(out, Triple{Subject: s, Predicate: p, Object: o})
	}
	return out, nil
}
