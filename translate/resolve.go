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
	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// CollectBoundTerms walks a BGP's patterns and returns every distinct
// bound (non-variable) term appearing in it, so the whole set can be
// resolved in a single batch lookup per spec §4.2/§8's "at most one
// round-trip per distinct (text, kind) per query" invariant.
func CollectBoundTerms(bgp *algebra.BGP) []sqlcore.Term {
	seen := map[sqlcore.CacheKey]sqlcore.Term{}
	add := func(pt algebra.PatternTerm) {
		if pt.IsVar() || pt.Bound == nil {
			return
		}
		seen[pt.Bound.Key()] = *pt.Bound
	}
	for _, tp := range bgp.Patterns {
		add(tp.Subject)
		add(tp.Predicate)
		add(tp.Object)
	}
	out := make([]sqlcore.Term, 0, len(seen))
	for _, term := range seen {
		out = append(out, term)
	}
	return out
}

// ResolveBatch resolves terms against the cache first, then the backend
// for whatever misses remain, and folds authoritative backend results
// back into the cache (spec §4.2).
func (t *Translator) ResolveBatch(ctx *sqlcore.Context, terms []sqlcore.Term) (map[sqlcore.CacheKey]sqlcore.TermID, error) {
	result := make(map[sqlcore.CacheKey]sqlcore.TermID, len(terms))
	if len(terms) == 0 {
		return result, nil
	}

	keys := make([]sqlcore.CacheKey, len(terms))
	for i, term := range terms {
		keys[i] = term.Key()
	}

	hits, misses := t.Cache.GetBatch(keys)
	for k, v := range hits {
		result[k] = v
	}
	if len(misses) == 0 {
		return result, nil
	}

	resolved, err := t.Resolver.ResolveBatch(ctx, t.Space, misses)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "resolving terms")
	}
	t.Cache.PutBatch(resolved)
	for k, v := range resolved {
		result[k] = v
	}
	return result, nil
}

// IDExprFor returns the SQL literal for a resolved term id, or the
// never-match literal "1=0"-style sentinel id (an id value guaranteed not
// to appear in any quad row) when the term was not found, per spec §4.2's
// "compiled into a SQL condition that cannot match" rule applied at the
// term-id granularity. The caller still emits an ordinary equality
// predicate against this sentinel, which composes correctly with AND/OR
// without special-casing the rest of the plan (spec §8's "single
// well-formed SQL string" invariant).
const neverMatchTermID = "-1"

func IDExprFor(resolved map[sqlcore.CacheKey]sqlcore.TermID, term sqlcore.Term) string {
	id, ok := resolved[term.Key()]
	if !ok {
		return neverMatchTermID
	}
	return itoa(int64(id))
}
