// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	"strings"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func convertCreateSeqStmt(stmt *pgq.CreateSeqStmt) *ir.Sequence {
	seq := &ir.Sequence{Name: qualifiedNameFromRangeVar(stmt.GetSequence())}

	for _, opt := range stmt.GetOptions() {
		def := opt.GetDefElem()
		if def == nil || def.GetDefname() != "owned_by" {
			continue
		}
		parts := nodeToStringList(def.GetArg())
		if len(parts) == 0 || strings.EqualFold(parts[len(parts)-1], "none") {
			continue
		}
		column := ir.NewIdent(parts[len(parts)-1])
		tableParts := parts[:len(parts)-1]
		var table ir.QualifiedName
		switch len(tableParts) {
		case 1:
			table = ir.NewQualifiedName(ir.NewIdent(tableParts[0]))
		case 2:
			table = ir.NewSchemaQualifiedName(ir.NewIdent(tableParts[0]), ir.NewIdent(tableParts[1]))
		default:
			continue
		}
		seq.OwnedBy = &ir.SequenceOwner{Table: table, Column: column}
	}

	return seq
}
