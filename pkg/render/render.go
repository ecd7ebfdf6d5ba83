// SPDX-License-Identifier: Apache-2.0

// Package render is the deterministic text emitter: SchemaModel in,
// SQLite 3 DDL text out. Layout is stable so two runs over the same model
// produce byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Render emits tables in the order given (already topologically or
// alphabetically sorted by the caller), followed by every index in
// model-insertion order. enableFK controls whether the PRAGMA prelude and
// REFERENCES clauses are written at all.
func Render(tables []*ir.Table, indexes []*ir.Index, enableFK bool) string {
	var b strings.Builder

	if enableFK {
		b.WriteString("PRAGMA foreign_keys = ON;\n\n")
	}

	for _, t := range tables {
		renderTable(&b, t, enableFK)
		b.WriteString("\n")
	}

	for _, idx := range indexes {
		renderIndex(&b, idx)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderTable(b *strings.Builder, t *ir.Table, enableFK bool) {
	fmt.Fprintf(b, "CREATE TABLE %s (\n", t.Name.ToSQL())

	var lines []string
	for _, col := range t.Columns {
		lines = append(lines, renderColumn(col, enableFK))
	}
	for _, c := range t.Constraints {
		if line, ok := renderConstraint(c, enableFK); ok {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString(");\n")
}

func renderColumn(col *ir.Column, enableFK bool) string {
	var parts []string
	parts = append(parts, col.Name.ToSQL(), col.SqliteType.String())

	if col.IsPrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.Autoincrement {
		parts = append(parts, "AUTOINCREMENT")
	}
	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if col.IsUnique {
		parts = append(parts, "UNIQUE")
	}
	if col.Default != nil {
		parts = append(parts, "DEFAULT", defaultSQL(col.Default))
	}
	if enableFK && col.References != nil {
		parts = append(parts, renderColumnRef(col.References))
	}
	if col.Check != nil {
		parts = append(parts, "CHECK ("+col.Check.ToSQL()+")")
	}

	return strings.Join(parts, " ")
}

// defaultSQL parenthesizes any default expression that is not a single
// literal, a bare builtin or a raw fragment, matching SQLite's grammar
// requirement that a non-trivial default expression be wrapped in
// parentheses. Raw fragments are written as they are, unparenthesized.
func defaultSQL(e ir.Expr) string {
	switch e.(type) {
	case ir.IntegerLiteral, ir.FloatLiteral, ir.StringLiteral, ir.BooleanLiteral,
		ir.NullLiteral, ir.CurrentTimestampExpr, ir.RawExpr:
		return e.ToSQL()
	default:
		return "(" + e.ToSQL() + ")"
	}
}

func renderColumnRef(ref *ir.ForeignKeyRef) string {
	col := ""
	if ref.Column != nil {
		col = "(" + ref.Column.ToSQL() + ")"
	}
	s := fmt.Sprintf("REFERENCES %s%s", ref.Table.ToSQL(), col)
	if ref.OnDelete != nil {
		s += " ON DELETE " + ref.OnDelete.String()
	}
	if ref.OnUpdate != nil {
		s += " ON UPDATE " + ref.OnUpdate.String()
	}
	return s
}

func renderConstraint(c ir.TableConstraint, enableFK bool) (string, bool) {
	switch v := c.(type) {
	case ir.PrimaryKeyConstraint:
		return namedPrefix(v.Name) + "PRIMARY KEY (" + identList(v.Columns) + ")", true

	case ir.UniqueConstraint:
		return namedPrefix(v.Name) + "UNIQUE (" + identList(v.Columns) + ")", true

	case ir.ForeignKeyConstraint:
		if !enableFK {
			return "", false
		}
		s := namedPrefix(v.Name) + fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			identList(v.Columns), v.RefTable.ToSQL(), identList(v.RefColumns))
		if v.OnDelete != nil {
			s += " ON DELETE " + v.OnDelete.String()
		}
		if v.OnUpdate != nil {
			s += " ON UPDATE " + v.OnUpdate.String()
		}
		return s, true

	case ir.CheckConstraint:
		return namedPrefix(v.Name) + "CHECK (" + v.Expr.ToSQL() + ")", true

	default:
		panic(fmt.Sprintf("render: unreachable table constraint type %T", c))
	}
}

func namedPrefix(name *ir.Ident) string {
	if name == nil {
		return ""
	}
	return "CONSTRAINT " + name.ToSQL() + " "
}

func identList(idents []ir.Ident) string {
	parts := make([]string, len(idents))
	for i, id := range idents {
		parts[i] = id.ToSQL()
	}
	return strings.Join(parts, ", ")
}

func renderIndex(b *strings.Builder, idx *ir.Index) {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	fmt.Fprintf(b, "CREATE %sINDEX %s ON %s (%s)", unique, idx.Name.ToSQL(), idx.Table.ToSQL(), indexColumnList(idx.Columns))
	if idx.WhereClause != nil {
		b.WriteString(" WHERE " + idx.WhereClause.ToSQL())
	}
	b.WriteString(";\n")
}

func indexColumnList(cols []ir.IndexColumn) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		switch v := c.(type) {
		case ir.IndexColumnName:
			parts[i] = v.Name.ToSQL()
		case ir.IndexColumnExpr:
			parts[i] = v.Expr.ToSQL()
		default:
			panic(fmt.Sprintf("render: unreachable index column type %T", c))
		}
	}
	return strings.Join(parts, ", ")
}
