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
	"context"
	"io"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// Select drains iter and decodes every row into a Solution, preserving
// the query's projection order and case-sensitive variable names (spec
// §4.8). vars is the Rendered.Vars list AssembleSelect produced, in the
// same quintuple-per-variable column layout.
func Select(ctx context.Context, iter sqlcore.RowIter, vars []string) ([]Solution, error) {
	var out []Solution
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, DecodeRow(row, vars))
	}
}
