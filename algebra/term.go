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

import "github.com/vital-ai/vitalgraph-sparql/sql"

// Term is an alias for the shared RDF term type, re-exported so algebra
// tree literals (TriplePattern.Object.Bound, Values.Rows entries, Lit
// expressions) don't force every caller to import package sql directly.
type Term = sql.Term
