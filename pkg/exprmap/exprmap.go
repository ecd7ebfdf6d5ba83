// SPDX-License-Identifier: Apache-2.0

// Package exprmap structurally rewrites the Expr algebra used by column
// defaults, CHECK predicates, and index predicates into the SQLite-safe
// subset, dropping whatever construct it cannot carry across losslessly.
// A nil return means "drop the enclosing default/check/predicate"; callers
// decide what that means for the construct they're rewriting.
package exprmap

import (
	"fmt"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// allowedFunctions is the allowlist of scalar and aggregate functions
// SQLite itself implements under these names; any other function call is
// dropped as a whole.
var allowedFunctions = map[string]bool{
	"lower": true, "upper": true, "length": true, "abs": true,
	"max": true, "min": true, "coalesce": true, "nullif": true,
	"typeof": true, "trim": true, "ltrim": true, "rtrim": true,
	"replace": true, "substr": true, "instr": true, "hex": true,
	"quote": true, "round": true, "random": true, "unicode": true,
	"zeroblob": true, "total": true, "sum": true, "avg": true,
	"count": true, "group_concat": true,
}

// Map rewrites e into its SQLite-safe form, or returns nil if e (or a
// mandatory part of it) cannot be represented at all.
func Map(e ir.Expr) (ir.Expr, []diagnostics.Warning) {
	if e == nil {
		return nil, nil
	}

	switch n := e.(type) {
	case ir.IntegerLiteral, ir.FloatLiteral, ir.StringLiteral, ir.NullLiteral,
		ir.ColumnRef, ir.CurrentTimestampExpr, ir.RawExpr:
		return e, nil

	case ir.BooleanLiteral:
		v := int64(0)
		if n.Value {
			v = 1
		}
		return ir.IntegerLiteral{Value: v}, nil

	case ir.NextValExpr:
		return nil, []diagnostics.Warning{diagnostics.New(
			diagnostics.NextvalRemoved, diagnostics.Lossy,
			fmt.Sprintf("nextval('%s') default dropped; SQLite has no sequence object", n.Sequence),
		)}

	case ir.CastExpr:
		inner, warnings := Map(n.Expr)
		warnings = append(warnings, diagnostics.New(
			diagnostics.CastRemoved, diagnostics.Info,
			fmt.Sprintf("cast to %s removed; SQLite is dynamically typed", n.TypeName),
		))
		return inner, warnings

	case ir.FunctionCallExpr:
		return mapFunctionCall(n)

	case ir.BinaryOpExpr:
		left, lw := Map(n.Left)
		right, rw := Map(n.Right)
		warnings := append(lw, rw...)
		if left == nil || right == nil {
			return nil, warnings
		}
		n.Left, n.Right = left, right
		return n, warnings

	case ir.UnaryOpExpr:
		inner, warnings := Map(n.Expr)
		if inner == nil {
			return nil, warnings
		}
		n.Expr = inner
		return n, warnings

	case ir.IsNullExpr:
		inner, warnings := Map(n.Expr)
		if inner == nil {
			return nil, warnings
		}
		n.Expr = inner
		return n, warnings

	case ir.BetweenExpr:
		inner, w1 := Map(n.Expr)
		low, w2 := Map(n.Low)
		high, w3 := Map(n.High)
		warnings := append(append(w1, w2...), w3...)
		if inner == nil || low == nil || high == nil {
			return nil, warnings
		}
		n.Expr, n.Low, n.High = inner, low, high
		return n, warnings

	case ir.NestedExpr:
		inner, warnings := Map(n.Expr)
		if inner == nil {
			return nil, warnings
		}
		n.Expr = inner
		return n, warnings

	case ir.InListExpr:
		inner, warnings := Map(n.Expr)
		if inner == nil {
			return nil, warnings
		}
		var list []ir.Expr
		for _, item := range n.List {
			mapped, w := Map(item)
			warnings = append(warnings, w...)
			if mapped != nil {
				list = append(list, mapped)
			}
		}
		n.Expr, n.List = inner, list
		return n, warnings

	default:
		panic(fmt.Sprintf("exprmap: unreachable expr type %T", e))
	}
}

func mapFunctionCall(n ir.FunctionCallExpr) (ir.Expr, []diagnostics.Warning) {
	if n.Name == "now" {
		return ir.CurrentTimestampExpr{}, nil
	}

	if !allowedFunctions[n.Name] {
		return nil, []diagnostics.Warning{diagnostics.New(
			diagnostics.DefaultUnsupported, diagnostics.Unsupported,
			fmt.Sprintf("function %s() has no SQLite equivalent", n.Name),
		)}
	}

	var args []ir.Expr
	var warnings []diagnostics.Warning
	for _, a := range n.Args {
		mapped, w := Map(a)
		warnings = append(warnings, w...)
		if mapped != nil {
			args = append(args, mapped)
		}
	}
	n.Args = args
	return n, warnings
}

// ApplyToDefaults maps every column's default expression in place. This is
// the expression mapper's pass over defaults; CHECK predicates and index
// predicates are mapped by the constraint transformer and index
// transformer respectively, each owning the diagnostic object label that
// makes sense for the construct it's rewriting.
func ApplyToDefaults(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	for _, t := range model.Tables {
		for _, col := range t.Columns {
			if col.Default == nil {
				continue
			}
			label := t.Name.Name.Normalized + "." + col.Name.Normalized
			mapped, w := Map(col.Default)
			warnings = append(warnings, Label(w, label)...)
			col.Default = mapped
		}
	}
	return warnings
}

// Label returns a copy of warnings each tagged with object, used by every
// caller of Map to attach the column/constraint/index label Map itself
// has no way to know.
func Label(warnings []diagnostics.Warning, object string) []diagnostics.Warning {
	out := make([]diagnostics.Warning, len(warnings))
	for i, w := range warnings {
		out[i] = w.WithObject(object)
	}
	return out
}
