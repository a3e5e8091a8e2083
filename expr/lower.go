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

// LowerBool renders node as a SQL boolean expression, suitable for a
// WHERE/HAVING/ON predicate (spec §4.5 and §4.6's Filter/HAVING split).
func LowerBool(r Resolver, node algebra.Expr) (string, error) {
	switch n := node.(type) {
	case *algebra.UnaryOp:
		if n.Op == "!" {
			arg, err := LowerBool(r, n.Arg)
			if err != nil {
				return "", err
			}
			return "(NOT " + arg + ")", nil
		}
	case *algebra.BinaryOp:
		switch n.Op {
		case "&&":
			l, err := LowerBool(r, n.Left)
			if err != nil {
				return "", err
			}
			rr, err := LowerBool(r, n.Right)
			if err != nil {
				return "", err
			}
			return "(" + l + " AND " + rr + ")", nil
		case "||":
			l, err := LowerBool(r, n.Left)
			if err != nil {
				return "", err
			}
			rr, err := LowerBool(r, n.Right)
			if err != nil {
				return "", err
			}
			return "(" + l + " OR " + rr + ")", nil
		case "=", "!=", "<", "<=", ">", ">=":
			return lowerComparison(r, n)
		}
	case *algebra.InExpr:
		return lowerIn(r, n)
	case *algebra.ExistsExpr:
		return r.LowerExists(n.Pattern, n.Negate)
	case *algebra.FuncCall:
		if isBoolFunc(n.Name) {
			return lowerBoolFunc(r, n)
		}
	}
	// Fallback: any other expression used in boolean position is
	// governed by its Effective Boolean Value (spec §4.5).
	value, err := LowerValue(r, node)
	if err != nil {
		return "", err
	}
	return ebv(value), nil
}

// LowerValue renders node as a SQL scalar expression suitable for use
// as a function argument, BIND target, or arithmetic operand.
func LowerValue(r Resolver, node algebra.Expr) (string, error) {
	switch n := node.(type) {
	case *algebra.Var:
		b, ok := r.ResolveVar(n.Name)
		if !ok {
			return "", sqlcore.ErrTranslation.New(fmt.Sprintf("unbound variable ?%s in expression", n.Name))
		}
		if b.IsAggregate {
			return b.IDExpr, nil
		}
		return b.TextExpr, nil
	case *algebra.Lit:
		return literalText(n.Term), nil
	case *algebra.AggregateRef:
		b, ok := r.ResolveVar(n.Var)
		if !ok {
			return "", sqlcore.ErrTranslation.New(fmt.Sprintf("unresolved aggregate reference %s", n.Var))
		}
		return b.IDExpr, nil
	case *algebra.UnaryOp:
		arg, err := LowerValue(r, n.Arg)
		if err != nil {
			return "", err
		}
		switch n.Op {
		case "-":
			return "(-" + numericExpr(arg) + ")", nil
		case "+":
			return numericExpr(arg), nil
		case "!":
			b, err := LowerBool(r, n.Arg)
			if err != nil {
				return "", err
			}
			return "(NOT " + b + ")", nil
		}
		return "", sqlcore.ErrUnsupported.New("unary operator " + n.Op)
	case *algebra.BinaryOp:
		switch n.Op {
		case "+", "-", "*", "/":
			l, err := LowerValue(r, n.Left)
			if err != nil {
				return "", err
			}
			rr, err := LowerValue(r, n.Right)
			if err != nil {
				return "", err
			}
			return "(" + numericExpr(l) + " " + n.Op + " " + numericExpr(rr) + ")", nil
		case "=", "!=", "<", "<=", ">", ">=", "&&", "||":
			return LowerBool(r, node)
		}
		return "", sqlcore.ErrUnsupported.New("binary operator " + n.Op)
	case *algebra.InExpr, *algebra.ExistsExpr:
		return LowerBool(r, node)
	case *algebra.FuncCall:
		return lowerFunc(r, n)
	default:
		return "", sqlcore.ErrUnsupported.New(fmt.Sprintf("expression node %T", node))
	}
}

func lowerComparison(r Resolver, n *algebra.BinaryOp) (string, error) {
	l, err := LowerValue(r, n.Left)
	if err != nil {
		return "", err
	}
	rr, err := LowerValue(r, n.Right)
	if err != nil {
		return "", err
	}
	op := n.Op
	if op == "!=" {
		op = "<>"
	}
	if numericComparable(n.Left) && numericComparable(n.Right) {
		return "(" + numericExpr(l) + " " + op + " " + numericExpr(rr) + ")", nil
	}
	return "(" + l + " " + op + " " + rr + ")", nil
}

// numericComparable is a conservative, static guess at whether an
// operand should be compared numerically: literal numerals, arithmetic
// expressions, and numeric built-ins all qualify. Ambiguous cases (bare
// variables) fall back to textual comparison, which matches the
// variable's own term_text column directly, including for strings.
func numericComparable(e algebra.Expr) bool {
	switch n := e.(type) {
	case *algebra.Lit:
		return isNumericDatatype(n.Term.EffectiveDatatype())
	case *algebra.BinaryOp:
		return n.Op == "+" || n.Op == "-" || n.Op == "*" || n.Op == "/"
	case *algebra.UnaryOp:
		return n.Op == "-" || n.Op == "+"
	case *algebra.FuncCall:
		switch strings.ToUpper(n.Name) {
		case "ABS", "CEIL", "FLOOR", "ROUND", "STRLEN":
			return true
		}
	}
	return false
}

func lowerIn(r Resolver, n *algebra.InExpr) (string, error) {
	arg, err := LowerValue(r, n.Arg)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(n.List))
	for i, item := range n.List {
		v, err := LowerValue(r, item)
		if err != nil {
			return "", err
		}
		parts[i] = v
	}
	op := "IN"
	if n.Negate {
		op = "NOT IN"
	}
	if len(parts) == 0 {
		if n.Negate {
			return "TRUE", nil
		}
		return "FALSE", nil
	}
	return "(" + arg + " " + op + " (" + strings.Join(parts, ", ") + "))", nil
}
