// SPDX-License-Identifier: Apache-2.0

// Package indexxform filters out non-B-tree index access methods and
// rewrites partial/expression index clauses, dropping any index whose
// predicate or expression column can't be carried into SQLite.
package indexxform

import (
	"fmt"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/exprmap"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Transform rewrites model.Indexes in place, dropping indexes that cannot
// be represented in SQLite at all.
func Transform(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	kept := model.Indexes[:0]

	for _, idx := range model.Indexes {
		label := idx.Name.Normalized

		if idx.Method != nil {
			warnings = append(warnings, diagnostics.New(
				diagnostics.IndexMethodIgnored, diagnostics.Info,
				fmt.Sprintf("index method %s has no SQLite equivalent; built as an ordinary B-tree index", idx.Method.String()),
			).WithObject(label))
			idx.Method = nil
		}

		if idx.WhereClause != nil {
			mapped, w := exprmap.Map(idx.WhereClause)
			warnings = append(warnings, exprmap.Label(w, label)...)
			if mapped == nil {
				warnings = append(warnings, diagnostics.New(
					diagnostics.PartialIndexUnsupported, diagnostics.Unsupported,
					"partial index predicate could not be rewritten into a SQLite-safe form; index dropped",
				).WithObject(label))
				continue
			}
			idx.WhereClause = mapped
		}

		cols, w, ok := rewriteColumns(idx.Columns)
		warnings = append(warnings, exprmap.Label(w, label)...)
		if !ok {
			warnings = append(warnings, diagnostics.New(
				diagnostics.ExpressionIndexUnsupported, diagnostics.Unsupported,
				"indexed expression could not be rewritten into a SQLite-safe form; index dropped",
			).WithObject(label))
			continue
		}
		idx.Columns = cols

		kept = append(kept, idx)
	}

	model.Indexes = kept
	return warnings
}

// rewriteColumns maps every expression entry in cols through the
// expression mapper. ok is false when any single expression entry could
// not be rewritten, signaling the whole index must be dropped.
func rewriteColumns(cols []ir.IndexColumn) ([]ir.IndexColumn, []diagnostics.Warning, bool) {
	var warnings []diagnostics.Warning
	out := cols[:0]

	for _, c := range cols {
		exprCol, isExpr := c.(ir.IndexColumnExpr)
		if !isExpr {
			out = append(out, c)
			continue
		}
		mapped, w := exprmap.Map(exprCol.Expr)
		warnings = append(warnings, w...)
		if mapped == nil {
			return nil, warnings, false
		}
		out = append(out, ir.IndexColumnExpr{Expr: mapped})
	}

	return out, warnings, true
}
