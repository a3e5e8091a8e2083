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

package algebra

// UpdateOp is one statement of a SPARQL Update request (spec §4.7). A
// request may name several, separated by ';'; they run one after another,
// and no backend transaction is opened around any of them.
type UpdateOp interface {
	isUpdateOp()
}

// UpdateRequest is a full update request: operations run in order.
type UpdateRequest struct {
	Ops []UpdateOp
}

// QuadTemplate is one triple slot inside a DATA block or an
// INSERT/DELETE template. Subject/Predicate/Object may be variables (a
// template, substituted per WHERE solution) or bound terms (ground
// DATA); Graph is nil for the default/global graph.
type QuadTemplate struct {
	Subject, Predicate, Object PatternTerm
	Graph                      *PatternTerm
}

// InsertData is `INSERT DATA { ... }`: every quad is ground.
type InsertData struct {
	Quads []QuadTemplate
}

func (*InsertData) isUpdateOp() {}

// DeleteData is `DELETE DATA { ... }`: every quad is ground.
type DeleteData struct {
	Quads []QuadTemplate
}

func (*DeleteData) isUpdateOp() {}

// Modify is `[WITH <g>] [DELETE {t}] [INSERT {t}] [USING ...] WHERE {p}`
// (spec §4.7), covering the combined and DELETE/INSERT-WHERE-shorthand
// forms (shorthand: DeleteTemplate/InsertTemplate mirror Where's BGP).
type Modify struct {
	DeleteTemplate []QuadTemplate
	InsertTemplate []QuadTemplate
	Where          Node
}

func (*Modify) isUpdateOp() {}

// CreateGraph is `CREATE [SILENT] GRAPH <g>`.
type CreateGraph struct {
	Graph  string
	Silent bool
}

func (*CreateGraph) isUpdateOp() {}

// DropGraph is `DROP [SILENT] GRAPH <g>`.
type DropGraph struct {
	Graph  string
	Silent bool
}

func (*DropGraph) isUpdateOp() {}

// ClearGraph is `CLEAR [SILENT] GRAPH <g>`.
type ClearGraph struct {
	Graph  string
	Silent bool
}

func (*ClearGraph) isUpdateOp() {}

// GraphRef names a graph-or-DEFAULT operand for COPY/MOVE/ADD.
type GraphRef struct {
	IRI       string
	IsDefault bool
}

// CopyGraph is `COPY [SILENT] <src> TO <dst>`: dst's content is replaced
// by src's.
type CopyGraph struct {
	Src, Dst GraphRef
	Silent   bool
}

func (*CopyGraph) isUpdateOp() {}

// MoveGraph is `MOVE [SILENT] <src> TO <dst>`: as CopyGraph, and src is
// then cleared.
type MoveGraph struct {
	Src, Dst GraphRef
	Silent   bool
}

func (*MoveGraph) isUpdateOp() {}

// AddGraph is `ADD [SILENT] <src> TO <dst>`: src's quads are merged into
// dst without clearing either graph first.
type AddGraph struct {
	Src, Dst GraphRef
	Silent   bool
}

func (*AddGraph) isUpdateOp() {}

// Load is `LOAD [SILENT] <source> [INTO GRAPH <g>]`. IntoGraph empty
// means the global graph.
type Load struct {
	Source    string
	IntoGraph string
	Silent    bool
}

func (*Load) isUpdateOp() {}
