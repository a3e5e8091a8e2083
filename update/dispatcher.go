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

// Package update dispatches SPARQL 1.1 Update requests (spec §4.7): each
// operation of a request runs against the backend in turn, translating
// any WHERE clause through the same translate.Translator the query path
// uses and handing ground or template-instantiated quads to the
// sql.QuadMutator.
package update

import (
	"github.com/sirupsen/logrus"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	"github.com/vital-ai/vitalgraph-sparql/internal/graphreg"
	"github.com/vital-ai/vitalgraph-sparql/load"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
	"github.com/vital-ai/vitalgraph-sparql/translate"
)

// Dispatcher executes UpdateRequests against one space.
type Dispatcher struct {
	Translator *translate.Translator
	Backend    sqlcore.Backend
	Mutator    sqlcore.QuadMutator
	Resolver   sqlcore.TermResolver
	Graphs     *graphreg.Registry
	Loader     *load.Loader
	Schema     sqlcore.SpaceSchema
	Space      string
	Log        *logrus.Entry
}

// New builds a Dispatcher for one space.
func New(t *translate.Translator, backend sqlcore.Backend, mutator sqlcore.QuadMutator, resolver sqlcore.TermResolver, graphs *graphreg.Registry, loader *load.Loader, schema sqlcore.SpaceSchema, space string, log *logrus.Entry) *Dispatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Dispatcher{
		Translator: t,
		Backend:    backend,
		Mutator:    mutator,
		Resolver:   resolver,
		Graphs:     graphs,
		Loader:     loader,
		Schema:     schema,
		Space:      space,
		Log:        log,
	}
}

// Execute runs every operation of req in the order written. The first
// operation to fail stops the request; earlier operations in the same
// request are not rolled back. No backend transaction is opened: each
// operation's writes are separate QuadMutator calls, so an operation that
// fails part-way (e.g. MODIFY after its deletes) leaves its earlier writes
// in place.
func (d *Dispatcher) Execute(ctx *sqlcore.Context, req *algebra.UpdateRequest) error {
	for _, op := range req.Ops {
		if err := d.dispatchOne(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) dispatchOne(ctx *sqlcore.Context, op algebra.UpdateOp) error {
	switch o := op.(type) {
	case *algebra.InsertData:
		return d.insertData(ctx, o)
	case *algebra.DeleteData:
		return d.deleteData(ctx, o)
	case *algebra.Modify:
		return d.modify(ctx, o)
	case *algebra.CreateGraph:
		return d.createGraph(ctx, o)
	case *algebra.DropGraph:
		return d.dropGraph(ctx, o)
	case *algebra.ClearGraph:
		return d.clearGraph(ctx, o)
	case *algebra.CopyGraph:
		return d.copyGraph(ctx, o)
	case *algebra.MoveGraph:
		return d.moveGraph(ctx, o)
	case *algebra.AddGraph:
		return d.addGraph(ctx, o)
	case *algebra.Load:
		return d.load(ctx, o)
	default:
		return sqlcore.ErrUnsupported.New("update operation")
	}
}

// graphIDFor resolves a graph IRI to its term id, registering it in the
// graph registry first if it is not yet known to a DATA/template insert
// (spec §4.7: "inserting a quad into a named graph that does not yet
// exist implicitly creates it").
func (d *Dispatcher) graphIDFor(ctx *sqlcore.Context, iri string) (sqlcore.TermID, error) {
	if iri == "" {
		iri = d.Schema.GlobalGraphIRI
	}
	if err := d.Graphs.EnsureRegistered(ctx, d.Space, []string{iri}); err != nil {
		return 0, sqlcore.ErrBackend.Wrap(err, "registering graph "+iri)
	}
	ids, err := d.Resolver.InternBatch(ctx, d.Space, []sqlcore.Term{sqlcore.IRI(iri)})
	if err != nil {
		return 0, sqlcore.ErrBackend.Wrap(err, "interning graph term "+iri)
	}
	return ids[sqlcore.IRI(iri).Key()], nil
}

// resolveGraphID looks up an existing graph's id without registering it,
// for operations (DROP, CLEAR, COPY/MOVE/ADD source) that must fail (or
// no-op under SILENT) rather than implicitly create the graph.
func (d *Dispatcher) resolveGraphID(ctx *sqlcore.Context, iri string) (sqlcore.TermID, bool, error) {
	exists, err := d.Graphs.Exists(ctx, d.Space, iri)
	if err != nil {
		return 0, false, sqlcore.ErrBackend.Wrap(err, "checking graph "+iri)
	}
	if !exists {
		return 0, false, nil
	}
	ids, err := d.Resolver.ResolveBatch(ctx, d.Space, []sqlcore.CacheKey{sqlcore.IRI(iri).Key()})
	if err != nil {
		return 0, false, sqlcore.ErrBackend.Wrap(err, "resolving graph "+iri)
	}
	id, ok := ids[sqlcore.IRI(iri).Key()]
	return id, ok, nil
}
