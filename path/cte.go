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

package path

import (
	"strconv"
	"strings"
)

// ResolvedEdge is an Edge with its predicate already resolved to a SQL
// term-id expression.
type ResolvedEdge struct {
	IDExpr  string
	Inverse bool
}

// BuildClosureCTE renders a `WITH RECURSIVE <name>(src_id, dst_id,
// depth, path) AS (...)` computing the one-or-more transitive closure of
// edges over quadTable. Termination and no-repeated-node results on
// cyclic data are guaranteed by two independent guards: a maxDepth hop
// cap, and a `path` array accumulator each recursive step checks with
// `NOT (next = ANY(path))` (spec §4.4's path-array cycle detection).
// graphWhere, if non-empty, is ANDed onto every base/recursive step's
// quad-row predicate (the quad alias is always "q").
func BuildClosureCTE(name, quadTable string, edges []ResolvedEdge, maxDepth int, graphWhere string) string {
	base := make([]string, 0, len(edges))
	for _, e := range edges {
		base = append(base, baseStep(quadTable, e, graphWhere))
	}

	recur := make([]string, 0, len(edges))
	for _, e := range edges {
		recur = append(recur, recurStep(name, quadTable, e, graphWhere, maxDepth))
	}

	var b strings.Builder
	b.WriteString("WITH RECURSIVE ")
	b.WriteString(name)
	b.WriteString("(src_id, dst_id, depth, path) AS (\n")
	b.WriteString(strings.Join(base, "\nUNION ALL\n"))
	b.WriteString("\nUNION ALL\n")
	b.WriteString(strings.Join(recur, "\nUNION ALL\n"))
	b.WriteString("\n)")
	return b.String()
}

// BuildEdgeUnion renders the plain (non-recursive) `src_id, dst_id`
// union of every edge's direct matches, for the zero-or-one modifier
// (spec §4.4's `?`), which never needs a transitive closure.
func BuildEdgeUnion(quadTable string, edges []ResolvedEdge, graphWhere string) string {
	parts := make([]string, 0, len(edges))
	for _, e := range edges {
		src, dst := "q.s_id", "q.o_id"
		if e.Inverse {
			src, dst = "q.o_id", "q.s_id"
		}
		where := "q.p_id = " + e.IDExpr
		if graphWhere != "" {
			where += " AND " + graphWhere
		}
		parts = append(parts, "SELECT "+src+" AS src_id, "+dst+" AS dst_id FROM "+quadTable+" AS q WHERE "+where)
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

func baseStep(quadTable string, e ResolvedEdge, graphWhere string) string {
	src, dst := "q.s_id", "q.o_id"
	if e.Inverse {
		src, dst = "q.o_id", "q.s_id"
	}
	where := "q.p_id = " + e.IDExpr
	if graphWhere != "" {
		where += " AND " + graphWhere
	}
	return "SELECT " + src + " AS src_id, " + dst + " AS dst_id, 1 AS depth, ARRAY[" + src + ", " + dst + "] AS path FROM " +
		quadTable + " AS q WHERE " + where
}

// recurStep guards each step with both a depth cap and a path-array
// cycle check (spec §4.4: "Path-array cycle detection ... and a maximum
// depth") so a cyclic graph can neither loop forever nor revisit a node
// already on the path being extended.
func recurStep(cteName, quadTable string, e ResolvedEdge, graphWhere string, maxDepth int) string {
	src, dst := "q.s_id", "q.o_id"
	if e.Inverse {
		src, dst = "q.o_id", "q.s_id"
	}
	where := "q.p_id = " + e.IDExpr + " AND " + src + " = c.dst_id AND c.depth < " + strconv.Itoa(maxDepth) +
		" AND NOT (" + dst + " = ANY(c.path))"
	if graphWhere != "" {
		where += " AND " + graphWhere
	}
	return "SELECT c.src_id AS src_id, " + dst + " AS dst_id, c.depth + 1 AS depth, c.path || " + dst + " AS path FROM " +
		cteName + " AS c JOIN " + quadTable + " AS q ON TRUE WHERE " + where
}
