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

// Package alias mints collision-free SQL identifiers under a hierarchical
// prefix scheme (spec §4.1). Replaces the "mutable shared counters"
// anti-pattern spec §9 flags: a Generator value is passed explicitly, and
// deriving a child is a method call, never a mutation of a package-level
// global. This mirrors the teacher's own per-connection counter discipline
// (driver.catalog.nextConnectionID/nextProcessID, each guarded by its own
// mutex and owned by a single struct instance rather than a package var).
package alias

import (
	"fmt"
	"sync"
)

// Kind is one of the supported alias kinds named in spec §4.1.
type Kind string

const (
	Quad     Kind = "quad"
	STerm    Kind = "s_term"
	PTerm    Kind = "p_term"
	OTerm    Kind = "o_term"
	GTerm    Kind = "g_term"
	Subquery Kind = "subquery"
	Join     Kind = "join"
	Union    Kind = "union"
)

// Generator mints fresh, collision-free aliases under one prefix scope.
// The zero value is not ready to use; call New or Derive.
type Generator struct {
	mu       *sync.Mutex
	counters map[Kind]*int
	prefix   string
}

// New returns a root generator for one query. Every generator, whether
// from New or Derive, keeps its own independent per-kind counters; Derive's
// prefix segment is what keeps a child's aliases distinct from its siblings'.
func New() *Generator {
	return &Generator{
		mu:       &sync.Mutex{},
		counters: map[Kind]*int{},
	}
}

// Derive returns a child generator with an additional prefix segment, so
// that every identifier it (or its own descendants) mint is distinguishable
// from a sibling child's. Per spec §4.1's contract, any translator
// subroutine handling an operand of a binary pattern (Join, LeftJoin,
// Union, Minus) must call Derive rather than reuse the parent, guaranteeing
// independent alias spaces for the two operands.
func (g *Generator) Derive(segment string) *Generator {
	prefix := segment
	if g.prefix != "" {
		prefix = g.prefix + "_" + segment
	}
	return &Generator{
		mu:       &sync.Mutex{},
		counters: map[Kind]*int{},
		prefix:   prefix,
	}
}

// Next mints the next identifier of the given kind.
func (g *Generator) Next(kind Kind) string {
	g.mu.Lock()
	c, ok := g.counters[kind]
	if !ok {
		zero := 0
		c = &zero
		g.counters[kind] = c
	}
	n := *c
	*c++
	g.mu.Unlock()

	if g.prefix == "" {
		return fmt.Sprintf("%s_%d", kind, n)
	}
	return fmt.Sprintf("%s_%s_%d", g.prefix, kind, n)
}

// NextQuad is a convenience for the most common case, a fresh quad-table
// alias for one triple pattern.
func (g *Generator) NextQuad() string { return g.Next(Quad) }

// NextTerm mints an alias for the term table joined to expose a variable at
// the given quad position (s/p/o/g).
func (g *Generator) NextTerm(pos byte) string {
	switch pos {
	case 's':
		return g.Next(STerm)
	case 'p':
		return g.Next(PTerm)
	case 'o':
		return g.Next(OTerm)
	case 'g':
		return g.Next(GTerm)
	default:
		panic("alias: unknown quad position " + string(pos))
	}
}
