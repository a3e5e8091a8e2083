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
	"bufio"
	"bytes"
	"errors"
	"strings"

	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

var (
	errUnexpectedEnd      = errors.New("unexpected end of line")
	errUnterminatedIRI    = errors.New("unterminated IRI reference")
	errBadBlankNode       = errors.New("malformed blank node label")
	errUnknownTermStart   = errors.New("term does not start with '<', '_', or '\"'")
	errUnterminatedLiteral = errors.New("unterminated string literal")
)

// ParseNTriples reads an N-Triples document (the one RDF serialization
// LOAD is required to accept; spec §4.7 leaves the exact serialization
// set open) and returns its terms as (subject, predicate, object)
// triples. Blank nodes get document-scoped labels as written; the
// caller (update dispatcher) is responsible for re-scoping them per
// spec §4.7's blank-node freshness rule if the same document is loaded
// twice.
func ParseNTriples(data []byte) ([][3]sqlcore.Term, error) {
	var out [][3]sqlcore.Term
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(line, ".")
		line = strings.TrimSpace(line)
		s, rest, err := parseTerm(line)
		if err != nil {
			return nil, sqlcore.ErrParse.New("N-Triples subject: " + err.Error())
		}
		p, rest, err := parseTerm(rest)
		if err != nil {
			return nil, sqlcore.ErrParse.New("N-Triples predicate: " + err.Error())
		}
		o, _, err := parseTerm(rest)
		if err != nil {
			return nil, sqlcore.ErrParse.New("N-Triples object: " + err.Error())
		}
		out = append(out, [3]sqlcore.Term{s, p, o})
	}
	if err := scanner.Err(); err != nil {
		return nil, sqlcore.ErrParse.New("N-Triples scan: " + err.Error())
	}
	return out, nil
}

// parseTerm consumes one leading term (IRI ref, blank node label, or
// literal) from line and returns it plus the unconsumed remainder.
func parseTerm(line string) (sqlcore.Term, string, error) {
	line = strings.TrimLeft(line, " \t")
	if line == "" {
		return sqlcore.Term{}, "", errUnexpectedEnd
	}
	switch line[0] {
	case '<':
		end := strings.IndexByte(line, '>')
		if end < 0 {
			return sqlcore.Term{}, "", errUnterminatedIRI
		}
		return sqlcore.IRI(line[1:end]), line[end+1:], nil
	case '_':
		if !strings.HasPrefix(line, "_:") {
			return sqlcore.Term{}, "", errBadBlankNode
		}
		i := 2
		for i < len(line) && !isTermBoundary(line[i]) {
			i++
		}
		return sqlcore.BlankNode(line[2:i]), line[i:], nil
	case '"':
		text, rest, err := parseQuoted(line)
		if err != nil {
			return sqlcore.Term{}, "", err
		}
		rest = strings.TrimLeft(rest, " \t")
		switch {
		case strings.HasPrefix(rest, "@"):
			i := 1
			for i < len(rest) && !isTermBoundary(rest[i]) {
				i++
			}
			return sqlcore.LangLiteral(text, rest[1:i]), rest[i:], nil
		case strings.HasPrefix(rest, "^^"):
			dt, tail, err := parseTerm(rest[2:])
			if err != nil {
				return sqlcore.Term{}, "", err
			}
			return sqlcore.TypedLiteral(text, dt.Text), tail, nil
		default:
			return sqlcore.PlainLiteral(text), rest, nil
		}
	default:
		return sqlcore.Term{}, "", errUnknownTermStart
	}
}

// parseQuoted consumes a "..." literal body, honoring backslash escapes,
// and returns its unescaped text plus the remainder after the closing
// quote.
func parseQuoted(line string) (string, string, error) {
	var b strings.Builder
	i := 1
	for i < len(line) {
		c := line[i]
		if c == '"' {
			return b.String(), line[i+1:], nil
		}
		if c == '\\' && i+1 < len(line) {
			switch line[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(line[i+1])
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return "", "", errUnterminatedLiteral
}

func isTermBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '<' || c == '"' || c == '.'
}
