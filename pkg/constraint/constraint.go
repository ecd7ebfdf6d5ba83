// SPDX-License-Identifier: Apache-2.0

// Package constraint promotes single-column integer primary keys to column
// level, strips or neuters foreign key deferrability, and rewrites CHECK
// expressions through the expression mapper — one pass per table.
package constraint

import (
	"fmt"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/exprmap"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Transform runs the per-table constraint pass over every table in model.
// When enableFK is false every foreign key, table- and column-level, is
// dropped rather than merely neutered.
func Transform(model *ir.SchemaModel, enableFK bool) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	for _, t := range model.Tables {
		promoteIntegerPK(t)
		warnings = append(warnings, rebuildConstraints(t, enableFK)...)
		warnings = append(warnings, rewriteColumns(t, enableFK)...)
	}
	return warnings
}

// promoteIntegerPK moves a single-column table-level PK naming an
// integer-typed column down onto the column itself, leaving SQLite's
// rowid-alias idiom reachable for a plain `id integer primary key` that
// never went through SERIAL or IDENTITY.
func promoteIntegerPK(t *ir.Table) {
	idx, name, ok := t.SingleColumnPrimaryKey()
	if !ok {
		return
	}
	col, found := t.FindColumn(name.Normalized)
	if !found || col.Autoincrement || !ir.IsIntegral(col.PgType) {
		return
	}
	col.IsPrimaryKey = true
	t.RemoveConstraint(idx)
}

func rebuildConstraints(t *ir.Table, enableFK bool) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	kept := t.Constraints[:0]

	for _, c := range t.Constraints {
		switch v := c.(type) {
		case ir.PrimaryKeyConstraint, ir.UniqueConstraint:
			kept = append(kept, c)

		case ir.ForeignKeyConstraint:
			if !enableFK {
				continue
			}
			if v.Deferrable {
				warnings = append(warnings, diagnostics.New(
					diagnostics.DeferrableIgnored, diagnostics.Lossy,
					"DEFERRABLE foreign key forced to NOT DEFERRABLE; SQLite has no deferred constraint checking",
				).WithObject(constraintLabel(t, v.Name)))
			}
			v.Deferrable = false
			kept = append(kept, v)

		case ir.CheckConstraint:
			label := constraintLabel(t, v.Name)
			mapped, w := exprmap.Map(v.Expr)
			warnings = append(warnings, exprmap.Label(w, label)...)
			if mapped == nil {
				warnings = append(warnings, diagnostics.New(
					diagnostics.CheckExpressionUnsupported, diagnostics.Unsupported,
					"CHECK expression could not be rewritten into a SQLite-safe form; constraint dropped",
				).WithObject(label))
				continue
			}
			v.Expr = mapped
			kept = append(kept, v)

		default:
			panic(fmt.Sprintf("constraint: unreachable table constraint type %T", c))
		}
	}

	t.Constraints = kept
	return warnings
}

func rewriteColumns(t *ir.Table, enableFK bool) []diagnostics.Warning {
	var warnings []diagnostics.Warning

	for _, col := range t.Columns {
		label := t.Name.Name.Normalized + "." + col.Name.Normalized

		if col.Check != nil {
			mapped, w := exprmap.Map(col.Check)
			warnings = append(warnings, exprmap.Label(w, label)...)
			if mapped == nil {
				warnings = append(warnings, diagnostics.New(
					diagnostics.CheckExpressionUnsupported, diagnostics.Unsupported,
					"CHECK expression could not be rewritten into a SQLite-safe form; constraint dropped",
				).WithObject(label))
			}
			col.Check = mapped
		}

		if col.References != nil {
			if !enableFK {
				col.References = nil
			} else if col.References.Deferrable {
				warnings = append(warnings, diagnostics.New(
					diagnostics.DeferrableIgnored, diagnostics.Lossy,
					"DEFERRABLE foreign key forced to NOT DEFERRABLE; SQLite has no deferred constraint checking",
				).WithObject(label))
				col.References.Deferrable = false
			}
		}
	}

	return warnings
}

func constraintLabel(t *ir.Table, name *ir.Ident) string {
	if name != nil {
		return t.Name.Name.Normalized + "." + name.Normalized
	}
	return t.Name.Name.Normalized
}
