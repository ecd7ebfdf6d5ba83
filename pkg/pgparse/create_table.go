// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// convertCreateStmt converts a CREATE TABLE statement. Inline
// GENERATED ... AS IDENTITY column constraints are reported back as
// AlterIdentity entries alongside the table, since the planner resolves
// identity columns the same way regardless of whether they arrived inline
// or via a later ALTER TABLE.
func convertCreateStmt(stmt *pgq.CreateStmt) (*ir.Table, []*ir.AlterIdentity, []diagnostics.Warning) {
	name := qualifiedNameFromRangeVar(stmt.GetRelation())

	var columns []*ir.Column
	var constraints []ir.TableConstraint
	var identities []*ir.AlterIdentity
	var warnings []diagnostics.Warning

	for _, elt := range stmt.GetTableElts() {
		switch {
		case elt.GetColumnDef() != nil:
			col, isIdentity, w := convertColumnDef(elt.GetColumnDef())
			warnings = append(warnings, w...)
			columns = append(columns, col)
			if isIdentity {
				identities = append(identities, &ir.AlterIdentity{Table: name, Column: col.Name})
			}
		case elt.GetConstraint() != nil:
			if tc, ok := convertTableConstraint(elt.GetConstraint()); ok {
				constraints = append(constraints, tc)
			}
		}
	}

	return &ir.Table{Name: name, Columns: columns, Constraints: constraints}, identities, warnings
}

func convertColumnDef(col *pgq.ColumnDef) (*ir.Column, bool, []diagnostics.Warning) {
	var warnings []diagnostics.Warning
	c := &ir.Column{
		Name:   ir.NewIdent(col.GetColname()),
		PgType: convertTypeName(col.GetTypeName()),
	}

	isIdentity := false

	for _, cn := range col.GetConstraints() {
		constraint := cn.GetConstraint()
		if constraint == nil {
			continue
		}
		switch constraint.GetContype() {
		case pgq.ConstrType_CONSTR_NOTNULL:
			c.NotNull = true
		case pgq.ConstrType_CONSTR_NULL:
			c.NotNull = false
		case pgq.ConstrType_CONSTR_DEFAULT:
			c.Default = convertExpr(constraint.GetRawExpr())
		case pgq.ConstrType_CONSTR_PRIMARY:
			c.IsPrimaryKey = true
			c.NotNull = true
		case pgq.ConstrType_CONSTR_UNIQUE:
			c.IsUnique = true
		case pgq.ConstrType_CONSTR_CHECK:
			c.Check = convertExpr(constraint.GetRawExpr())
		case pgq.ConstrType_CONSTR_FOREIGN:
			c.References = convertInlineForeignKey(constraint)
		case pgq.ConstrType_CONSTR_IDENTITY:
			isIdentity = true
			c.NotNull = true
		}
	}

	return c, isIdentity, warnings
}

func convertInlineForeignKey(constraint *pgq.Constraint) *ir.ForeignKeyRef {
	ref := &ir.ForeignKeyRef{
		Table:      qualifiedNameFromRangeVar(constraint.GetPktable()),
		Deferrable: constraint.GetDeferrable(),
	}
	if cols := identListFromKeys(constraint.GetPkAttrs()); len(cols) > 0 {
		ref.Column = &cols[0]
	}
	if a, ok := fkAction(constraint.GetFkDelAction()); ok {
		ref.OnDelete = &a
	}
	if a, ok := fkAction(constraint.GetFkUpdAction()); ok {
		ref.OnUpdate = &a
	}
	return ref
}

func convertTableConstraint(constraint *pgq.Constraint) (ir.TableConstraint, bool) {
	switch constraint.GetContype() {
	case pgq.ConstrType_CONSTR_PRIMARY:
		return ir.PrimaryKeyConstraint{
			Name:    optionalIdent(constraint.GetConname()),
			Columns: identListFromKeys(constraint.GetKeys()),
		}, true
	case pgq.ConstrType_CONSTR_UNIQUE:
		return ir.UniqueConstraint{
			Name:    optionalIdent(constraint.GetConname()),
			Columns: identListFromKeys(constraint.GetKeys()),
		}, true
	case pgq.ConstrType_CONSTR_FOREIGN:
		fk := ir.ForeignKeyConstraint{
			Name:       optionalIdent(constraint.GetConname()),
			Columns:    identListFromKeys(constraint.GetFkAttrs()),
			RefTable:   qualifiedNameFromRangeVar(constraint.GetPktable()),
			RefColumns: identListFromKeys(constraint.GetPkAttrs()),
			Deferrable: constraint.GetDeferrable(),
		}
		if a, ok := fkAction(constraint.GetFkDelAction()); ok {
			fk.OnDelete = &a
		}
		if a, ok := fkAction(constraint.GetFkUpdAction()); ok {
			fk.OnUpdate = &a
		}
		return fk, true
	case pgq.ConstrType_CONSTR_CHECK:
		return ir.CheckConstraint{
			Name: optionalIdent(constraint.GetConname()),
			Expr: convertExpr(constraint.GetRawExpr()),
		}, true
	default:
		return nil, false
	}
}

// fkAction maps libpg_query's single-character referential action codes
// (as used in the raw Constraint node) onto FkAction. "a" is NO ACTION,
// the default, and is reported as ok=false so callers leave OnDelete /
// OnUpdate nil rather than rendering a redundant explicit clause.
func fkAction(code string) (ir.FkAction, bool) {
	switch code {
	case "c":
		return ir.FkCascade, true
	case "n":
		return ir.FkSetNull, true
	case "d":
		return ir.FkSetDefault, true
	case "r":
		return ir.FkRestrict, true
	default:
		return ir.FkNoAction, false
	}
}
