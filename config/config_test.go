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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyUsesDefaults(t *testing.T) {
	opts, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, Defaults(), opts)
}

func TestLoadPartialOverridesOnlyMentionedFields(t *testing.T) {
	opts, err := Load([]byte("path_max_depth: 4\nquery_timeout: 5s\n"))
	require.NoError(t, err)
	require.Equal(t, 4, opts.PathMaxDepth)
	require.Equal(t, 5*time.Second, opts.QueryTimeout)
	require.Equal(t, Defaults().TermCacheCapacity, opts.TermCacheCapacity)
	require.Equal(t, "urn:___GLOBAL", opts.GlobalGraphIRI)
}

func TestLoadOverridesGlobalGraphIRI(t *testing.T) {
	opts, err := Load([]byte("global_graph_iri: urn:example:default\n"))
	require.NoError(t, err)
	require.Equal(t, "urn:example:default", opts.GlobalGraphIRI)
}
