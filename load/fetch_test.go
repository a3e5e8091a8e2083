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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vital-ai/vitalgraph-sparql/config"
)

func TestFetch_RejectsDisallowedScheme(t *testing.T) {
	cfg := config.Defaults()
	cfg.LoadAllowedSchemes = []string{"https"}
	f := NewFetcher(cfg)
	_, err := f.Fetch(context.Background(), "ftp://example.com/data.nt")
	require.Error(t, err)
}

func TestFetch_RejectsDisallowedHost(t *testing.T) {
	cfg := config.Defaults()
	cfg.LoadAllowedHosts = []string{"trusted.example"}
	f := NewFetcher(cfg)
	_, err := f.Fetch(context.Background(), "https://evil.example/data.nt")
	require.Error(t, err)
}

func TestFetch_RejectsInvalidURL(t *testing.T) {
	cfg := config.Defaults()
	f := NewFetcher(cfg)
	_, err := f.Fetch(context.Background(), "://not-a-url")
	require.Error(t, err)
}
