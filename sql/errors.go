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
	"gopkg.in/src-d/go-errors.v1"
)

// Kind identifies which of the taxonomy of errors in spec §7 an error
// belongs to, independent of the Go type that carries it. Callers that need
// to distinguish error kinds should use errors.Is against the package-level
// *errors.Kind values below, never string-match a message.
type Kind = errors.Kind

var (
	// ErrParse means the SPARQL text did not parse.
	ErrParse = errors.NewKind("parse error: %s")

	// ErrUnsupported means the algebra was parseable but contains a
	// construct this core has no lowering for (SERVICE, certain nested
	// path combinations, an expression function with no SQL equivalent).
	// An unsupported expression fails the whole query with this error; it
	// is not lowered to NULL.
	ErrUnsupported = errors.NewKind("unsupported construct: %s")

	// ErrTermResolution means an internal invariant was violated: a term
	// id could not be obtained for a term the query requires as bound.
	ErrTermResolution = errors.NewKind("could not resolve term: %s")

	// ErrTranslation means the algebra was parseable but translation
	// produced an ill-formed plan. This should be impossible in practice;
	// it is surfaced as an internal error rather than panicking so the
	// caller always gets a typed error back.
	ErrTranslation = errors.NewKind("internal translation error: %s")

	// ErrBackend means the SQL executor failed.
	ErrBackend = errors.NewKind("backend error: %s")

	// ErrTimeout means the per-query deadline was exceeded.
	ErrTimeout = errors.NewKind("query timed out after %s")

	// ErrTransfer means a LOAD fetch failed or was rejected (size, scheme,
	// host).
	ErrTransfer = errors.NewKind("load transfer failed: %s")

	// ErrUpdate means a graph-management rule was violated, e.g. DROP of
	// an unknown graph without SILENT.
	ErrUpdate = errors.NewKind("update error: %s")
)
