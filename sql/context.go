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

import (
	"context"
	"time"
)

// Context carries everything one query or update needs beyond the
// standard context.Context: which space it runs against, and the query
// timeout in effect for it. It embeds context.Context so it can
// be passed anywhere a context.Context is expected, matching the teacher's
// *sql.Context pattern (a context.Context plus engine-specific fields).
type Context struct {
	context.Context

	Space string

	// QueryTimeout bounds the main SQL execution suspension point (spec
	// §5). Zero means "use the backend's own default".
	QueryTimeout time.Duration
}

// NewContext wraps a context.Context for one query or update against the
// given space.
func NewContext(parent context.Context, space string, timeout time.Duration) *Context {
	return &Context{Context: parent, Space: space, QueryTimeout: timeout}
}

// WithTimeout returns a derived Context whose deadline is bounded by
// QueryTimeout, and the cancel func the caller must invoke once the query
// or update completes (successfully or not) so the backend connection is
// released promptly, per spec §5's cancellation requirement.
func (c *Context) WithTimeout() (*Context, context.CancelFunc) {
	if c.QueryTimeout <= 0 {
		ctx, cancel := context.WithCancel(c.Context)
		return &Context{Context: ctx, Space: c.Space, QueryTimeout: c.QueryTimeout}, cancel
	}
	ctx, cancel := context.WithTimeout(c.Context, c.QueryTimeout)
	return &Context{Context: ctx, Space: c.Space, QueryTimeout: c.QueryTimeout}, cancel
}
