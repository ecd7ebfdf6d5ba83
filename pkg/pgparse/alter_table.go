// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// convertAlterTableStmt handles the two ALTER TABLE shapes the planner
// acts on: ADD CONSTRAINT, merged into the target table once every
// statement has been seen, and ADD GENERATED ... AS IDENTITY, resolved
// onto SQLite's rowid-alias idiom. Every other ALTER TABLE subcommand
// (ADD COLUMN, DROP COLUMN, RENAME, SET TYPE, ...) falls outside this
// translator's scope and is dropped silently.
func convertAlterTableStmt(stmt *pgq.AlterTableStmt) ([]*ir.AlterConstraint, []*ir.AlterIdentity, []diagnostics.Warning) {
	if stmt.GetObjtype() != pgq.ObjectType_OBJECT_TABLE {
		return nil, nil, nil
	}

	table := qualifiedNameFromRangeVar(stmt.GetRelation())
	var constraints []*ir.AlterConstraint
	var identities []*ir.AlterIdentity
	var warnings []diagnostics.Warning

	for _, cmd := range stmt.GetCmds() {
		c := cmd.GetAlterTableCmd()
		if c == nil {
			continue
		}
		switch c.GetSubtype() {
		case pgq.AlterTableType_AT_AddConstraint:
			node, ok := c.GetDef().GetNode().(*pgq.Node_Constraint)
			if !ok {
				continue
			}
			if tc, ok := convertTableConstraint(node.Constraint); ok {
				constraints = append(constraints, &ir.AlterConstraint{Table: table, Constraint: tc})
			}
		case pgq.AlterTableType_AT_AddIdentity:
			identities = append(identities, &ir.AlterIdentity{Table: table, Column: ir.NewIdent(c.GetName())})
		}
	}

	return constraints, identities, warnings
}
