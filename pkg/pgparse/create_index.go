// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	"strings"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func convertIndexStmt(stmt *pgq.IndexStmt) (*ir.Index, []diagnostics.Warning) {
	var warnings []diagnostics.Warning

	idx := &ir.Index{
		Name:   ir.NewIdent(stmt.GetIdxname()),
		Table:  qualifiedNameFromRangeVar(stmt.GetRelation()),
		Unique: stmt.GetUnique(),
	}

	if method := indexMethod(stmt.GetAccessMethod()); method != nil {
		idx.Method = method
	}

	for _, param := range stmt.GetIndexParams() {
		elem := param.GetIndexElem()
		if elem == nil {
			continue
		}
		if elem.GetName() != "" {
			idx.Columns = append(idx.Columns, ir.IndexColumnName{Name: ir.NewIdent(elem.GetName())})
			continue
		}
		if elem.GetExpr() != nil {
			idx.Columns = append(idx.Columns, ir.IndexColumnExpr{Expr: convertExpr(elem.GetExpr())})
		}
	}

	if where := stmt.GetWhereClause(); where != nil {
		idx.WhereClause = convertExpr(where)
	}

	return idx, warnings
}

func indexMethod(name string) *ir.IndexMethod {
	var m ir.IndexMethod
	switch strings.ToLower(name) {
	case "", "btree":
		return nil
	case "hash":
		m = ir.IndexHash
	case "gin":
		m = ir.IndexGin
	case "gist":
		m = ir.IndexGist
	case "spgist":
		m = ir.IndexSpGist
	case "brin":
		m = ir.IndexBrin
	default:
		return nil
	}
	return &m
}
