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

package load

import (
	"context"

	"github.com/vital-ai/vitalgraph-sparql/config"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Loader dereferences and parses a LOAD source into ready-to-insert
// quads (spec §4.7's LOAD operation). The update dispatcher owns
// picking the destination graph and interning/inserting the result;
// Loader's job stops at "here are the triples this document named".
type Loader struct {
	fetcher *Fetcher
}

// NewLoader builds a Loader from configuration.
func NewLoader(cfg config.Options) *Loader {
	return &Loader{fetcher: NewFetcher(cfg)}
}

// Load fetches and parses src, returning the (subject, predicate,
// object) triples it names. The caller pairs each with the destination
// graph id to build full Quads.
func (l *Loader) Load(ctx context.Context, src string) ([][3]sqlcore.Term, error) {
	body, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	triples, err := ParseNTriples(body)
	if err != nil {
		return nil, sqlcore.ErrTransfer.New("parsing LOAD source " + src + ": " + err.Error())
	}
	return triples, nil
}
