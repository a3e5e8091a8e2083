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
	"github.com/opentracing/opentracing-go"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Update runs req against space, per spec §4.7: operations run in the
// order they were written. No backend transaction is opened: each
// operation's writes are separate QuadMutator calls, and a failure leaves
// the writes of earlier operations in place.
func (e *Engine) Update(ctx *sqlcore.Context, space string, schema sqlcore.SpaceSchema, req *algebra.UpdateRequest) error {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "engine.update")
	defer span.Finish()
	uctx := sqlcore.NewContext(spanCtx, space, ctx.QueryTimeout)
	uctx, cancel := uctx.WithTimeout()
	defer cancel()

	tr, err := e.translator(space, schema)
	if err != nil {
		return err
	}
	disp := e.dispatcher(space, schema, tr)
	return disp.Execute(uctx, req)
}
