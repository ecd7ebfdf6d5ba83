// SPDX-License-Identifier: Apache-2.0

// Package pgparse lifts PostgreSQL DDL text into the shared ir.SchemaModel
// using pg_query_go's bindings to the real PostgreSQL grammar, so every
// statement this package accepts is guaranteed syntactically valid
// PostgreSQL rather than a hand-rolled subset grammar.
package pgparse

import (
	"fmt"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Parse lifts a whole DDL script into a SchemaModel, statement by
// statement. A syntax error anywhere in the script is reported as a
// single PARSE_SKIPPED error and an empty model is returned, since
// pg_query_go parses the entire input as one grammar pass and cannot
// recover a partial AST from a syntax error. Statement kinds this package
// does not understand (DML, views, functions, grants, ...) are silently
// ignored; that is by design, not a parse failure.
func Parse(input string) (*ir.SchemaModel, []diagnostics.Warning) {
	model := &ir.SchemaModel{}
	var warnings []diagnostics.Warning

	result, err := pgq.Parse(input)
	if err != nil {
		warnings = append(warnings, diagnostics.New(
			diagnostics.ParseSkipped,
			diagnostics.Error,
			fmt.Sprintf("failed to parse DDL: %v", err),
		))
		return model, warnings
	}

	for _, raw := range result.GetStmts() {
		node := raw.GetStmt().GetNode()
		if node == nil {
			continue
		}
		warnings = append(warnings, parseStatement(model, node)...)
	}

	return model, warnings
}

func parseStatement(model *ir.SchemaModel, node any) []diagnostics.Warning {
	switch n := node.(type) {
	case *pgq.Node_CreateStmt:
		table, identities, warnings := convertCreateStmt(n.CreateStmt)
		if table != nil {
			model.Tables = append(model.Tables, table)
			model.IdentityColumns = append(model.IdentityColumns, identities...)
		}
		return warnings
	case *pgq.Node_IndexStmt:
		idx, warnings := convertIndexStmt(n.IndexStmt)
		if idx != nil {
			model.Indexes = append(model.Indexes, idx)
		}
		return warnings
	case *pgq.Node_CreateSeqStmt:
		model.Sequences = append(model.Sequences, convertCreateSeqStmt(n.CreateSeqStmt))
		return nil
	case *pgq.Node_AlterTableStmt:
		constraints, identities, warnings := convertAlterTableStmt(n.AlterTableStmt)
		model.AlterConstraints = append(model.AlterConstraints, constraints...)
		model.IdentityColumns = append(model.IdentityColumns, identities...)
		return warnings
	case *pgq.Node_CreateEnumStmt:
		model.Enums = append(model.Enums, convertCreateEnumStmt(n.CreateEnumStmt))
		return nil
	case *pgq.Node_CreateDomainStmt:
		domain, warnings := convertCreateDomainStmt(n.CreateDomainStmt)
		model.Domains = append(model.Domains, domain)
		return warnings
	default:
		// Not a DDL statement this translator cares about: DML, views,
		// functions, roles, grants, and anything else passes through
		// silently, matching how the rest of the pack's sql2pgroll
		// package treats unrecognized statement kinds.
		return nil
	}
}
