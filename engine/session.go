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

package engine

import (
	"context"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Session is a caller-held handle for one space: it names which space
// every Query/Update call against it targets and carries that space's
// schema, so callers don't have to thread both through every call site
// (mirrors the teacher's *driver.Connector binding one session to one
// backend database).
type Session struct {
	Space  string
	Schema sqlcore.SpaceSchema
}

// NewSession looks up space's schema from the backend and binds a
// Session to it.
func NewSession(ctx context.Context, e *Engine, space string) (*Session, error) {
	schema, err := e.Backend.Space(space)
	if err != nil {
		return nil, sqlcore.ErrBackend.Wrap(err, "looking up schema for space "+space)
	}
	return &Session{Space: space, Schema: schema}, nil
}

// Query runs q against this session's space.
func (s *Session) Query(ctx *sqlcore.Context, e *Engine, q *Query) (*Result, error) {
	return e.Query(ctx, s.Space, s.Schema, q)
}

// Update runs req against this session's space.
func (s *Session) Update(ctx *sqlcore.Context, e *Engine, req *algebra.UpdateRequest) error {
	return e.Update(ctx, s.Space, s.Schema, req)
}
