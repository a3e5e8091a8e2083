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

package expr

import (
	"fmt"
	"strings"

	"github.com/vital-ai/vitalgraph-sparql/algebra"
	sqlcore "github.com/vital-ai/vitalgraph-sparql/sql"
)

// isBoolFunc lists spec §4.5 built-ins whose natural SQL rendering is
// already a boolean expression, so LowerBool can use it unwrapped
// instead of folding it through ebv().
func isBoolFunc(name string) bool {
	switch strings.ToUpper(name) {
	case "BOUND", "ISIRI", "ISURI", "ISLITERAL", "ISBLANK", "ISNUMERIC",
		"REGEX", "CONTAINS", "STRSTARTS", "STRENDS", "SAMETERM", "LANGMATCHES":
		return true
	default:
		return false
	}
}

func lowerBoolFunc(r Resolver, n *algebra.FuncCall) (string, error) {
	return lowerFunc(r, n)
}

// termArg resolves a FuncCall argument to its full term Binding, for
// functions needing the term's kind/lang/datatype rather than just its
// text value (isIRI, isLITERAL, isBLANK, LANG, DATATYPE, ...).
func termArg(r Resolver, e algebra.Expr) (b Binding, bound bool, err error) {
	v, ok := e.(*algebra.Var)
	if !ok {
		return Binding{}, false, sqlcore.ErrUnsupported.New("expected a variable argument")
	}
	b, ok = r.ResolveVar(v.Name)
	if !ok {
		return Binding{}, false, nil
	}
	return b, true, nil
}

func lowerFunc(r Resolver, n *algebra.FuncCall) (string, error) {
	name := strings.ToUpper(n.Name)
	args := n.Args

	arg := func(i int) (string, error) { return LowerValue(r, args[i]) }

	switch name {
	case "BOUND":
		if len(args) != 1 {
			return "", sqlcore.ErrUnsupported.New("BOUND takes exactly one argument")
		}
		v, ok := args[0].(*algebra.Var)
		if !ok {
			return "", sqlcore.ErrUnsupported.New("BOUND requires a variable argument")
		}
		b, ok := r.ResolveVar(v.Name)
		if !ok {
			return "FALSE", nil
		}
		return "(" + b.IDExpr + " IS NOT NULL)", nil

	case "ISIRI", "ISURI":
		b, ok, err := termArgOK(r, args)
		if err != nil || !ok {
			return boolOrErr(ok, err)
		}
		return "(" + b.KindExpr + " = 'U')", nil
	case "ISLITERAL":
		b, ok, err := termArgOK(r, args)
		if err != nil || !ok {
			return boolOrErr(ok, err)
		}
		return "(" + b.KindExpr + " = 'L')", nil
	case "ISBLANK":
		b, ok, err := termArgOK(r, args)
		if err != nil || !ok {
			return boolOrErr(ok, err)
		}
		return "(" + b.KindExpr + " = 'B')", nil
	case "ISNUMERIC":
		b, ok, err := termArgOK(r, args)
		if err != nil || !ok {
			return boolOrErr(ok, err)
		}
		return "(" + b.DatatypeExpr + " IN ('http://www.w3.org/2001/XMLSchema#integer', 'http://www.w3.org/2001/XMLSchema#decimal', 'http://www.w3.org/2001/XMLSchema#double', 'http://www.w3.org/2001/XMLSchema#float'))", nil

	case "STR":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return v, nil
	case "LANG":
		b, _, err := termArg(r, args[0])
		if err != nil {
			return "", err
		}
		return "COALESCE(" + b.LangExpr + ", '')", nil
	case "DATATYPE":
		b, _, err := termArg(r, args[0])
		if err != nil {
			return "", err
		}
		return "COALESCE(" + b.DatatypeExpr + ", 'http://www.w3.org/2001/XMLSchema#string')", nil
	case "LANGMATCHES":
		tag, err := arg(0)
		if err != nil {
			return "", err
		}
		pattern, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(LOWER(" + tag + ") = LOWER(" + pattern + ") OR " + pattern + " = '*')", nil
	case "SAMETERM":
		l, err := lowerTermIdentity(r, args[0])
		if err != nil {
			return "", err
		}
		rr, err := lowerTermIdentity(r, args[1])
		if err != nil {
			return "", err
		}
		return "(" + l + " = " + rr + ")", nil

	case "CONCAT":
		parts := make([]string, len(args))
		for i := range args {
			v, err := arg(i)
			if err != nil {
				return "", err
			}
			parts[i] = v
		}
		return "CONCAT(" + strings.Join(parts, ", ") + ")", nil
	case "STRLEN":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "CHAR_LENGTH(" + v + ")", nil
	case "UCASE":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "UPPER(" + v + ")", nil
	case "LCASE":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "LOWER(" + v + ")", nil
	case "SUBSTR":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		start, err := arg(1)
		if err != nil {
			return "", err
		}
		if len(args) == 2 {
			return "SUBSTRING(" + v + " FROM " + numericExpr(start) + ")", nil
		}
		length, err := arg(2)
		if err != nil {
			return "", err
		}
		return "SUBSTRING(" + v + " FROM " + numericExpr(start) + " FOR " + numericExpr(length) + ")", nil
	case "REPLACE":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		pat, err := arg(1)
		if err != nil {
			return "", err
		}
		rep, err := arg(2)
		if err != nil {
			return "", err
		}
		return "REGEXP_REPLACE(" + v + ", " + pat + ", " + rep + ")", nil
	case "CONTAINS":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		needle, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(STRPOS(" + v + ", " + needle + ") > 0)", nil
	case "STRSTARTS":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		prefix, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(" + v + " LIKE (" + prefix + " || '%'))", nil
	case "STRENDS":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		suffix, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(" + v + " LIKE ('%' || " + suffix + "))", nil
	case "STRBEFORE":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		needle, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(CASE WHEN STRPOS(" + v + ", " + needle + ") > 0 THEN SUBSTRING(" + v + " FROM 1 FOR STRPOS(" + v + ", " + needle + ") - 1) ELSE '' END)", nil
	case "STRAFTER":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		needle, err := arg(1)
		if err != nil {
			return "", err
		}
		return "(CASE WHEN STRPOS(" + v + ", " + needle + ") > 0 THEN SUBSTRING(" + v + " FROM STRPOS(" + v + ", " + needle + ") + CHAR_LENGTH(" + needle + ")) ELSE '' END)", nil
	case "ENCODE_FOR_URI":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return encodeForURI(v), nil
	case "REGEX":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		pattern, err := arg(1)
		if err != nil {
			return "", err
		}
		flags := ""
		if len(args) == 3 {
			f, err := arg(2)
			if err != nil {
				return "", err
			}
			flags = f
		}
		if strings.Contains(flags, "i") {
			return "(" + v + " ~* " + pattern + ")", nil
		}
		return "(" + v + " ~ " + pattern + ")", nil

	case "ABS":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ABS(" + numericExpr(v) + ")", nil
	case "CEIL":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "CEIL(" + numericExpr(v) + ")", nil
	case "FLOOR":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "FLOOR(" + numericExpr(v) + ")", nil
	case "ROUND":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ROUND(" + numericExpr(v) + ")", nil
	case "RAND":
		return "RANDOM()", nil

	case "COALESCE":
		parts := make([]string, len(args))
		for i := range args {
			v, err := arg(i)
			if err != nil {
				return "", err
			}
			parts[i] = v
		}
		return "COALESCE(" + strings.Join(parts, ", ") + ")", nil
	case "IF":
		cond, err := LowerBool(r, args[0])
		if err != nil {
			return "", err
		}
		then, err := arg(1)
		if err != nil {
			return "", err
		}
		els, err := arg(2)
		if err != nil {
			return "", err
		}
		return "(CASE WHEN " + cond + " THEN " + then + " ELSE " + els + " END)", nil

	case "STRDT", "STRLANG":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return v, nil
	case "URI", "IRI":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return v, nil
	case "BNODE":
		if len(args) == 0 {
			return "MD5(RANDOM()::text)", nil
		}
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "MD5(" + v + ")", nil

	case "MD5":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "MD5(" + v + ")", nil
	case "SHA1":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ENCODE(DIGEST(" + v + ", 'sha1'), 'hex')", nil
	case "SHA256":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ENCODE(DIGEST(" + v + ", 'sha256'), 'hex')", nil
	case "SHA384":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ENCODE(DIGEST(" + v + ", 'sha384'), 'hex')", nil
	case "SHA512":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "ENCODE(DIGEST(" + v + ", 'sha512'), 'hex')", nil

	case "NOW":
		return "NOW()", nil
	case "YEAR", "MONTH", "DAY", "HOURS", "MINUTES", "SECONDS":
		v, err := arg(0)
		if err != nil {
			return "", err
		}
		return "EXTRACT(" + extractField(name) + " FROM CAST(" + v + " AS TIMESTAMP))", nil

	default:
		return "", sqlcore.ErrUnsupported.New(fmt.Sprintf("built-in function %s", n.Name))
	}
}

// extractField maps a SPARQL §4.5 accessor name to the SQL EXTRACT field
// it names: HOURS/MINUTES/SECONDS are plural in SPARQL but singular in
// Postgres's EXTRACT grammar, while YEAR/MONTH/DAY already agree.
func extractField(name string) string {
	switch name {
	case "HOURS":
		return "HOUR"
	case "MINUTES":
		return "MINUTE"
	case "SECONDS":
		return "SECOND"
	default:
		return name
	}
}

// encodeForURI percent-encodes the ASCII characters RFC 3986 reserves
// that commonly appear in RDF literal text. '%' is escaped first so a
// literal already containing a percent-sign isn't double-escaped by a
// later replacement.
func encodeForURI(v string) string {
	reserved := []struct{ char, escaped string }{
		{"%", "%25"},
		{" ", "%20"},
		{"!", "%21"},
		{"\"", "%22"},
		{"#", "%23"},
		{"$", "%24"},
		{"&", "%26"},
		{"'", "%27"},
		{"(", "%28"},
		{")", "%29"},
		{"*", "%2A"},
		{"+", "%2B"},
		{",", "%2C"},
		{"/", "%2F"},
		{":", "%3A"},
		{";", "%3B"},
		{"=", "%3D"},
		{"?", "%3F"},
		{"@", "%40"},
		{"[", "%5B"},
		{"]", "%5D"},
	}
	out := v
	for _, r := range reserved {
		out = "REPLACE(" + out + ", '" + r.char + "', '" + r.escaped + "')"
	}
	return out
}

func termArgOK(r Resolver, args []algebra.Expr) (b Binding, ok bool, err error) {
	if len(args) != 1 {
		return Binding{}, false, sqlcore.ErrUnsupported.New("expects exactly one argument")
	}
	return termArg(r, args[0])
}

func boolOrErr(ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return "FALSE", nil
}

// lowerTermIdentity renders a value for use by sameTerm: the term id
// when the argument is a variable (exact term identity, including
// datatype/language), or the resolved id of an embedded literal/IRI.
func lowerTermIdentity(r Resolver, e algebra.Expr) (string, error) {
	switch n := e.(type) {
	case *algebra.Var:
		b, ok := r.ResolveVar(n.Name)
		if !ok {
			return "", sqlcore.ErrTranslation.New("sameTerm: unbound variable ?" + n.Name)
		}
		return b.IDExpr, nil
	case *algebra.Lit:
		return r.ResolveTerm(n.Term)
	default:
		return "", sqlcore.ErrUnsupported.New("sameTerm argument must be a variable or constant term")
	}
}
