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

package graphreg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

type fakeStore struct {
	known      map[string][]sql.GraphInfo
	registered []string
	loadCalls  int
}

func (f *fakeStore) KnownGraphs(ctx context.Context, space string) ([]sql.GraphInfo, error) {
	f.loadCalls++
	return f.known[space], nil
}

func (f *fakeStore) RegisterGraphs(ctx context.Context, space string, iris []string) error {
	f.registered = append(f.registered, iris...)
	return nil
}

func (f *fakeStore) UnregisterGraph(ctx context.Context, space, iri string) error {
	return nil
}

func TestExistsLoadsOnFirstUseOnly(t *testing.T) {
	store := &fakeStore{known: map[string][]sql.GraphInfo{
		"s1": {{IRI: "urn:g1"}},
	}}
	reg := New(store)

	ok, err := reg.Exists(context.Background(), "s1", "urn:g1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = reg.Exists(context.Background(), "s1", "urn:unknown")
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, 1, store.loadCalls)
}

func TestEnsureRegisteredOnlySendsNewIRIs(t *testing.T) {
	store := &fakeStore{known: map[string][]sql.GraphInfo{
		"s1": {{IRI: "urn:g1"}},
	}}
	reg := New(store)

	err := reg.EnsureRegistered(context.Background(), "s1", []string{"urn:g1", "urn:g2"})
	require.NoError(t, err)
	require.Equal(t, []string{"urn:g2"}, store.registered)

	ok, err := reg.Exists(context.Background(), "s1", "urn:g2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUnregisterRemovesFromCache(t *testing.T) {
	store := &fakeStore{known: map[string][]sql.GraphInfo{
		"s1": {{IRI: "urn:g1"}},
	}}
	reg := New(store)

	require.NoError(t, reg.Unregister(context.Background(), "s1", "urn:g1"))
	ok, err := reg.Exists(context.Background(), "s1", "urn:g1")
	require.NoError(t, err)
	require.False(t, ok)
}
