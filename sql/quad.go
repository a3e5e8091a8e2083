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

package sql

// TermID is a stable term-dictionary identifier. Ids are never reused after
// a term is deleted (deletion is not exposed by this core), per spec §3's
// invariants.
type TermID int64

// Quad is an ordered 4-tuple of term ids: subject, predicate, object,
// graph. Physical storage and column types are backend-specific; this core
// only ever handles quads as four TermIDs.
type Quad struct {
	Subject   TermID
	Predicate TermID
	Object    TermID
	Graph     TermID
}

// GraphInfo is the graph registry's per-graph metadata (spec §3).
type GraphInfo struct {
	IRI string
	// TripleCount is optional; backends that don't maintain a live count
	// may leave it at zero.
	TripleCount int64
	CreatedAt   int64
	UpdatedAt   int64
}
