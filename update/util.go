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

package update

import (
	"strconv"

	"github.com/spf13/cast"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

func itoaTermID(id sqlcore.TermID) string { return strconv.FormatInt(int64(id), 10) }

func toInt64(v interface{}) int64 { return cast.ToInt64(v) }
