// SPDX-License-Identifier: Apache-2.0

package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/constraint"
	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func TestTransformPromotesSingleColumnIntegerPK(t *testing.T) {
	t.Parallel()

	col := &ir.Column{Name: ir.NewIdent("id"), PgType: ir.Integer{}}
	table := &ir.Table{
		Name:    ir.NewQualifiedName(ir.NewIdent("widgets")),
		Columns: []*ir.Column{col},
		Constraints: []ir.TableConstraint{
			ir.PrimaryKeyConstraint{Columns: []ir.Ident{ir.NewIdent("id")}},
		},
	}
	model := &ir.SchemaModel{Tables: []*ir.Table{table}}

	constraint.Transform(model, true)

	assert.True(t, col.IsPrimaryKey)
	assert.Empty(t, table.Constraints)
}

func TestTransformDropsForeignKeysWhenDisabled(t *testing.T) {
	t.Parallel()

	table := &ir.Table{
		Name: ir.NewQualifiedName(ir.NewIdent("orders")),
		Columns: []*ir.Column{
			{Name: ir.NewIdent("user_id"), PgType: ir.Integer{}, References: &ir.ForeignKeyRef{
				Table: ir.NewQualifiedName(ir.NewIdent("users")),
			}},
		},
		Constraints: []ir.TableConstraint{
			ir.ForeignKeyConstraint{RefTable: ir.NewQualifiedName(ir.NewIdent("users"))},
		},
	}
	model := &ir.SchemaModel{Tables: []*ir.Table{table}}

	warnings := constraint.Transform(model, false)

	assert.Empty(t, warnings)
	assert.Empty(t, table.Constraints)
	assert.Nil(t, table.Columns[0].References)
}

func TestTransformNeutersDeferrableForeignKey(t *testing.T) {
	t.Parallel()

	table := &ir.Table{
		Name: ir.NewQualifiedName(ir.NewIdent("orders")),
		Constraints: []ir.TableConstraint{
			ir.ForeignKeyConstraint{
				RefTable:   ir.NewQualifiedName(ir.NewIdent("users")),
				Deferrable: true,
			},
		},
	}
	model := &ir.SchemaModel{Tables: []*ir.Table{table}}

	warnings := constraint.Transform(model, true)

	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.DeferrableIgnored, warnings[0].Code)
	fk := table.Constraints[0].(ir.ForeignKeyConstraint)
	assert.False(t, fk.Deferrable)
}

func TestTransformDropsUnsupportedCheckExpression(t *testing.T) {
	t.Parallel()

	table := &ir.Table{
		Name: ir.NewQualifiedName(ir.NewIdent("orders")),
		Constraints: []ir.TableConstraint{
			ir.CheckConstraint{Expr: ir.NextValExpr{Sequence: "s"}},
		},
	}
	model := &ir.SchemaModel{Tables: []*ir.Table{table}}

	warnings := constraint.Transform(model, true)

	var codes []string
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, diagnostics.CheckExpressionUnsupported)
	assert.Empty(t, table.Constraints)
}

func TestTransformRewritesColumnCheck(t *testing.T) {
	t.Parallel()

	col := &ir.Column{Name: ir.NewIdent("age"), PgType: ir.Integer{}, Check: ir.BooleanLiteral{Value: true}}
	table := &ir.Table{Name: ir.NewQualifiedName(ir.NewIdent("people")), Columns: []*ir.Column{col}}
	model := &ir.SchemaModel{Tables: []*ir.Table{table}}

	constraint.Transform(model, true)

	assert.Equal(t, ir.IntegerLiteral{Value: 1}, col.Check)
}
