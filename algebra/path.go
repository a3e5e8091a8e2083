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

package algebra

// PathKind tags the property-path node variants of spec §4.4.
type PathKind int

const (
	// PathPredicate is a leaf: a single IRI predicate.
	PathPredicate PathKind = iota
	// PathStar is `path*` (zero-or-more).
	PathStar
	// PathPlus is `path+` (one-or-more).
	PathPlus
	// PathOpt is `path?` (zero-or-one).
	PathOpt
	// PathSeq is `left/right`.
	PathSeq
	// PathAlt is `left|right`.
	PathAlt
	// PathInverse is `~path`.
	PathInverse
	// PathNegated is `!(iri1|iri2|...)`, optionally over inverses.
	PathNegated
)

// Path is a property path expression (spec §4.4). Exactly the fields
// relevant to Kind are populated.
type Path struct {
	Kind PathKind

	// Predicate is the IRI text, for PathPredicate.
	Predicate string

	// Sub is the single child path, for Star/Plus/Opt/Inverse.
	Sub *Path

	// Left/Right are the two arms, for Seq/Alt.
	Left, Right *Path

	// Negated lists the predicate IRIs excluded by a PathNegated node.
	// NegatedInverse marks, per entry, whether that predicate is negated
	// in its inverse direction (`!(^iri)`).
	Negated        []string
	NegatedInverse []bool
}
