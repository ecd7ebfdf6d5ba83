// SPDX-License-Identifier: Apache-2.0

// Package planner runs the four sub-stages that fold the parser's deferred
// ALTER TABLE fragments and PostgreSQL auto-increment idioms back onto the
// model's tables, leaving a SchemaModel with no pending alters or identity
// columns and no SERIAL/nextval idioms left unresolved.
package planner

import (
	"fmt"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Run executes the planner's four sub-stages, in order: merge ALTERs,
// resolve IDENTITY, resolve SERIAL, resolve enum/domain columns.
func Run(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	warnings = append(warnings, mergeAlters(model)...)
	warnings = append(warnings, resolveIdentity(model)...)
	warnings = append(warnings, resolveSerial(model)...)
	resolveUserTypes(model)
	return warnings
}

func findTable(model *ir.SchemaModel, target ir.QualifiedName) (*ir.Table, bool) {
	for _, t := range model.Tables {
		if sameTable(t.Name, target) {
			return t, true
		}
	}
	return nil, false
}

// sameTable compares the unqualified name always, and the schema only when
// both sides carry one; an ALTER TABLE statement and the CREATE TABLE it
// targets are not guaranteed to agree on schema qualification even though
// they name the same object.
func sameTable(a, b ir.QualifiedName) bool {
	if a.Name.Normalized != b.Name.Normalized {
		return false
	}
	if a.Schema != nil && b.Schema != nil {
		return a.Schema.Normalized == b.Schema.Normalized
	}
	return true
}

func mergeAlters(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	for _, alter := range model.AlterConstraints {
		t, ok := findTable(model, alter.Table)
		if !ok {
			warnings = append(warnings, diagnostics.New(
				diagnostics.AlterTargetMissing, diagnostics.Unsupported,
				fmt.Sprintf("ALTER TABLE target %q not found; constraint dropped", alter.Table.String()),
			).WithObject(alter.Table.String()))
			continue
		}
		t.Constraints = append(t.Constraints, alter.Constraint)
	}
	model.AlterConstraints = nil
	return warnings
}

func resolveIdentity(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning
	domains := domainBaseTypes(model.Domains)

	for _, id := range model.IdentityColumns {
		t, ok := findTable(model, id.Table)
		if !ok {
			warnings = append(warnings, diagnostics.New(
				diagnostics.AlterTargetMissing, diagnostics.Unsupported,
				fmt.Sprintf("IDENTITY target table %q not found", id.Table.String()),
			).WithObject(id.Table.String()))
			continue
		}

		col, ok := t.FindColumn(id.Column.Normalized)
		if !ok {
			label := t.Name.Name.Normalized + "." + id.Column.Normalized
			warnings = append(warnings, diagnostics.New(
				diagnostics.AlterTargetMissing, diagnostics.Unsupported,
				fmt.Sprintf("IDENTITY target column %q not found on %q", id.Column.Normalized, t.Name.String()),
			).WithObject(label))
			continue
		}

		label := t.Name.Name.Normalized + "." + col.Name.Normalized
		solePK, pkIdx := isSolePrimaryKey(t, col)
		if solePK && identityEligibleType(col.PgType, domains) {
			col.PgType = ir.Integer{}
			col.IsPrimaryKey = true
			col.Autoincrement = true
			col.NotNull = false
			col.Default = nil
			if pkIdx >= 0 {
				t.RemoveConstraint(pkIdx)
			}
			warnings = append(warnings, diagnostics.New(
				diagnostics.IdentityToAutoincrement, diagnostics.Lossy,
				"GENERATED AS IDENTITY resolved onto SQLite's INTEGER PRIMARY KEY AUTOINCREMENT rowid alias",
			).WithObject(label))
		} else {
			warnings = append(warnings, diagnostics.New(
				diagnostics.IdentityNoPK, diagnostics.Unsupported,
				"IDENTITY column is not the table's sole primary key; it has no SQLite analog and is left unresolved",
			).WithObject(label))
		}
	}

	model.IdentityColumns = nil
	return warnings
}

func resolveSerial(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning

	for _, t := range model.Tables {
		for _, col := range t.Columns {
			_, isNextVal := col.Default.(ir.NextValExpr)
			if !ir.IsSerial(col.PgType) && !isNextVal {
				continue
			}

			label := t.Name.Name.Normalized + "." + col.Name.Normalized
			solePK, pkIdx := isSolePrimaryKey(t, col)
			col.PgType = ir.Integer{}
			col.Default = nil

			if solePK {
				col.IsPrimaryKey = true
				if pkIdx >= 0 {
					t.RemoveConstraint(pkIdx)
				}
				warnings = append(warnings, diagnostics.New(
					diagnostics.SerialToRowid, diagnostics.Lossy,
					"SERIAL/nextval default resolved onto SQLite's INTEGER PRIMARY KEY rowid alias",
				).WithObject(label))
			} else {
				warnings = append(warnings, diagnostics.New(
					diagnostics.SerialNotPrimaryKey, diagnostics.Lossy,
					"SERIAL column is not the table's primary key; its sequence semantics are dropped",
				).WithObject(label))
			}
		}
	}

	for _, seq := range model.Sequences {
		warnings = append(warnings, diagnostics.New(
			diagnostics.SequenceIgnored, diagnostics.Info,
			"standalone sequence has no SQLite equivalent and produces no output",
		).WithObject(seq.Name.String()))
	}

	return warnings
}

// resolveUserTypes re-types columns the parser could only lift as the
// Other escape hatch once every CREATE TYPE ... AS ENUM and CREATE DOMAIN
// in the script has been seen: a column definition alone can't tell an
// enum from a domain from a genuinely unknown type.
func resolveUserTypes(model *ir.SchemaModel) {
	enumNames := make(map[string]bool, len(model.Enums))
	for _, e := range model.Enums {
		enumNames[e.Name.Name.Normalized] = true
	}
	domainNames := make(map[string]bool, len(model.Domains))
	for _, d := range model.Domains {
		domainNames[d.Name.Name.Normalized] = true
	}

	for _, t := range model.Tables {
		for _, col := range t.Columns {
			other, ok := col.PgType.(ir.Other)
			if !ok {
				continue
			}
			norm := ir.NewIdent(other.Name).Normalized
			switch {
			case enumNames[norm]:
				col.PgType = ir.Enum{Name: other.Name}
			case domainNames[norm]:
				col.PgType = ir.Domain{Name: other.Name}
			}
		}
	}
}

func isSolePrimaryKey(t *ir.Table, col *ir.Column) (bool, int) {
	if col.IsPrimaryKey {
		return true, -1
	}
	idx, name, ok := t.SingleColumnPrimaryKey()
	if ok && name.Normalized == col.Name.Normalized {
		return true, idx
	}
	return false, -1
}

func domainBaseTypes(domains []*ir.DomainDef) map[string]ir.PgType {
	m := make(map[string]ir.PgType, len(domains))
	for _, d := range domains {
		m[d.Name.Name.Normalized] = d.BaseType
	}
	return m
}

// identityEligibleType reports whether pg is one of the plain integer
// widths IDENTITY can resolve onto, following through a Domain or
// unresolved Other reference to its recorded base type.
func identityEligibleType(pg ir.PgType, domains map[string]ir.PgType) bool {
	if isIntegerBase(pg) {
		return true
	}
	var name string
	switch t := pg.(type) {
	case ir.Domain:
		name = t.Name
	case ir.Other:
		name = t.Name
	default:
		return false
	}
	base, found := domains[ir.NewIdent(name).Normalized]
	return found && isIntegerBase(base)
}

func isIntegerBase(pg ir.PgType) bool {
	switch pg.(type) {
	case ir.Integer, ir.BigInt, ir.SmallInt:
		return true
	default:
		return false
	}
}
