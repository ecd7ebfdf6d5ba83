// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func convertCreateEnumStmt(stmt *pgq.CreateEnumStmt) *ir.EnumDef {
	return &ir.EnumDef{
		Name:   qualifiedNameFromNodes(stmt.GetTypeName()),
		Values: stringListFromNodes(stmt.GetVals()),
	}
}

// convertCreateDomainStmt converts CREATE DOMAIN, a supplement this
// translator adds beyond plain table/index DDL. Only the domain's base
// type is carried forward onto columns typed with it (the type mapper
// flattens Domain{name} to its recorded base type); the domain's own
// NOT NULL/DEFAULT/CHECK clauses are parsed for completeness but not
// propagated onto referencing columns, since SQLite has no cross-table
// domain construct to enforce them against; simulating domain CHECKs is
// out of scope for this translator.
func convertCreateDomainStmt(stmt *pgq.CreateDomainStmt) (*ir.DomainDef, []diagnostics.Warning) {
	var warnings []diagnostics.Warning

	domain := &ir.DomainDef{
		Name:     qualifiedNameFromNodes(stmt.GetDomainname()),
		BaseType: convertTypeName(stmt.GetTypeName()),
	}

	for _, cn := range stmt.GetConstraints() {
		constraint := cn.GetConstraint()
		if constraint == nil {
			continue
		}
		switch constraint.GetContype() {
		case pgq.ConstrType_CONSTR_NOTNULL:
			domain.NotNull = true
		case pgq.ConstrType_CONSTR_DEFAULT:
			domain.Default = convertExpr(constraint.GetRawExpr())
		case pgq.ConstrType_CONSTR_CHECK:
			domain.Check = convertExpr(constraint.GetRawExpr())
		}
	}

	return domain, warnings
}
