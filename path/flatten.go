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

// Package path compiles spec §4.4's property-path modifiers
// (*, +, ?, /, |, ~, !) into SQL. The repetition modifiers (*, +, ?)
// only support a sub-path that flattens to a plain set of predicate
// edges (a predicate, its inverse, or an alternation of these) — this
// module's resolved Open Question on nested repetition (spec §9):
// general recursive closure over an arbitrary nested sub-path is out of
// scope, since it would require a second level of recursive SQL this
// module's backend-agnostic text generation cannot express portably.
package path

import "github.com/vital-ai/vitalgraph-sparql/algebra"

// Edge is one traversable (predicate, direction) pair.
type Edge struct {
	Predicate string
	Inverse   bool
}

// FlattenSimple reduces p to its set of edges when p is built only from
// Predicate/Inverse/Alt nodes. ok is false for any other shape (Seq,
// Negated, or a nested repetition), meaning the caller must reject the
// path as unsupported.
func FlattenSimple(p *algebra.Path) ([]Edge, bool) {
	if p == nil {
		return nil, false
	}
	switch p.Kind {
	case algebra.PathPredicate:
		return []Edge{{Predicate: p.Predicate}}, true
	case algebra.PathInverse:
		if p.Sub == nil || p.Sub.Kind != algebra.PathPredicate {
			return nil, false
		}
		return []Edge{{Predicate: p.Sub.Predicate, Inverse: true}}, true
	case algebra.PathAlt:
		left, ok := FlattenSimple(p.Left)
		if !ok {
			return nil, false
		}
		right, ok := FlattenSimple(p.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	default:
		return nil, false
	}
}
