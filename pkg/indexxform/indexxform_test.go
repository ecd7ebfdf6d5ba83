// SPDX-License-Identifier: Apache-2.0

package indexxform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/indexxform"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func TestTransformClearsNonBtreeMethod(t *testing.T) {
	t.Parallel()

	method := ir.IndexGin
	idx := &ir.Index{
		Name:    ir.NewIdent("idx_gin"),
		Table:   ir.NewQualifiedName(ir.NewIdent("docs")),
		Method:  &method,
		Columns: []ir.IndexColumn{ir.IndexColumnName{Name: ir.NewIdent("body")}},
	}
	model := &ir.SchemaModel{Indexes: []*ir.Index{idx}}

	warnings := indexxform.Transform(model)

	require.Len(t, model.Indexes, 1)
	assert.Nil(t, model.Indexes[0].Method)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.IndexMethodIgnored, warnings[0].Code)
}

func TestTransformDropsIndexWithUnsupportedPredicate(t *testing.T) {
	t.Parallel()

	idx := &ir.Index{
		Name:        ir.NewIdent("idx_partial"),
		Table:       ir.NewQualifiedName(ir.NewIdent("docs")),
		Columns:     []ir.IndexColumn{ir.IndexColumnName{Name: ir.NewIdent("body")}},
		WhereClause: ir.NextValExpr{Sequence: "s"},
	}
	model := &ir.SchemaModel{Indexes: []*ir.Index{idx}}

	warnings := indexxform.Transform(model)

	assert.Empty(t, model.Indexes)
	var codes []string
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, diagnostics.PartialIndexUnsupported)
}

func TestTransformDropsIndexWithUnsupportedExpressionColumn(t *testing.T) {
	t.Parallel()

	idx := &ir.Index{
		Name:  ir.NewIdent("idx_expr"),
		Table: ir.NewQualifiedName(ir.NewIdent("docs")),
		Columns: []ir.IndexColumn{
			ir.IndexColumnExpr{Expr: ir.FunctionCallExpr{Name: "gen_random_uuid"}},
		},
	}
	model := &ir.SchemaModel{Indexes: []*ir.Index{idx}}

	warnings := indexxform.Transform(model)

	assert.Empty(t, model.Indexes)
	var codes []string
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, diagnostics.ExpressionIndexUnsupported)
}

func TestTransformKeepsPlainIndex(t *testing.T) {
	t.Parallel()

	idx := &ir.Index{
		Name:    ir.NewIdent("idx_users_email"),
		Table:   ir.NewQualifiedName(ir.NewIdent("users")),
		Columns: []ir.IndexColumn{ir.IndexColumnName{Name: ir.NewIdent("email")}},
	}
	model := &ir.SchemaModel{Indexes: []*ir.Index{idx}}

	warnings := indexxform.Transform(model)

	assert.Empty(t, warnings)
	require.Len(t, model.Indexes, 1)
}
