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
	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Triple is an instantiated RDF triple (CONSTRUCT/DESCRIBE have no graph
// position in their output, per spec §4.8 and the supplemented "DESCRIBE
// returns a flat triple list" behavior).
type Triple struct {
	Subject, Predicate, Object sqlcore.Term
}

// Construct instantiates template once per solution row, substituting
// each template variable by its bound term and dropping any instantiated
// triple that still has an unbound position (spec §4.8).
func Construct(solutions []Solution, template []algebra.TriplePattern) []Triple {
	var out []Triple
	for _, sol := range solutions {
		for _, tp := range template {
			s, ok := resolveTemplateTerm(sol, tp.Subject)
			if !ok {
				continue
			}
			p, ok := resolveTemplateTerm(sol, tp.Predicate)
			if !ok {
				continue
			}
			o, ok := resolveTemplateTerm(sol, tp.Object)
			if !ok {
				continue
			}
			out = append(out, Triple{Subject: s, Predicate: p, Object: o})
		}
	}
	return out
}

func resolveTemplateTerm(sol Solution, pt algebra.PatternTerm) (sqlcore.Term, bool) {
	if !pt.IsVar() {
		if pt.Bound == nil {
			return sqlcore.Term{}, false
		}
		return *pt.Bound, true
	}
	term, ok := sol[pt.Var]
	return term, ok
}
