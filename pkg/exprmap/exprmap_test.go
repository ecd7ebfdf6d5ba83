// SPDX-License-Identifier: Apache-2.0

package exprmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/exprmap"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

func TestMapPassesThroughUnchangedNodes(t *testing.T) {
	t.Parallel()

	for _, e := range []ir.Expr{
		ir.IntegerLiteral{Value: 1},
		ir.StringLiteral{Value: "hi"},
		ir.NullLiteral{},
		ir.ColumnRef{Name: "id"},
		ir.CurrentTimestampExpr{},
	} {
		mapped, warnings := exprmap.Map(e)
		assert.Equal(t, e, mapped)
		assert.Empty(t, warnings)
	}
}

func TestMapBooleanLiteralToInteger(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.BooleanLiteral{Value: true})

	assert.Equal(t, ir.IntegerLiteral{Value: 1}, mapped)
	assert.Empty(t, warnings)
}

func TestMapNextValDropsWithWarning(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.NextValExpr{Sequence: "widgets_id_seq"})

	assert.Nil(t, mapped)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.NextvalRemoved, warnings[0].Code)
}

func TestMapCastUnwrapsToInnerResult(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.CastExpr{Expr: ir.IntegerLiteral{Value: 5}, TypeName: "bigint"})

	assert.Equal(t, ir.IntegerLiteral{Value: 5}, mapped)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.CastRemoved, warnings[0].Code)
}

func TestMapNowRewritesToCurrentTimestamp(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.FunctionCallExpr{Name: "now"})

	assert.Equal(t, ir.CurrentTimestampExpr{}, mapped)
	assert.Empty(t, warnings)
}

func TestMapAllowlistedFunctionKeepsCall(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.FunctionCallExpr{Name: "lower", Args: []ir.Expr{ir.ColumnRef{Name: "email"}}})

	assert.Equal(t, ir.FunctionCallExpr{Name: "lower", Args: []ir.Expr{ir.ColumnRef{Name: "email"}}}, mapped)
	assert.Empty(t, warnings)
}

func TestMapUnknownFunctionDropsWithWarning(t *testing.T) {
	t.Parallel()

	mapped, warnings := exprmap.Map(ir.FunctionCallExpr{Name: "gen_random_uuid"})

	assert.Nil(t, mapped)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.DefaultUnsupported, warnings[0].Code)
}

func TestMapBinaryOpDropsWhenChildDrops(t *testing.T) {
	t.Parallel()

	expr := ir.BinaryOpExpr{
		Left:  ir.ColumnRef{Name: "a"},
		Op:    "=",
		Right: ir.NextValExpr{Sequence: "s"},
	}

	mapped, warnings := exprmap.Map(expr)

	assert.Nil(t, mapped)
	assert.NotEmpty(t, warnings)
}

func TestMapInListFiltersIndividualItems(t *testing.T) {
	t.Parallel()

	expr := ir.InListExpr{
		Expr: ir.ColumnRef{Name: "status"},
		List: []ir.Expr{
			ir.StringLiteral{Value: "active"},
			ir.NextValExpr{Sequence: "s"},
			ir.StringLiteral{Value: "closed"},
		},
	}

	mapped, warnings := exprmap.Map(expr)

	require.NotNil(t, mapped)
	list := mapped.(ir.InListExpr)
	assert.Equal(t, []ir.Expr{ir.StringLiteral{Value: "active"}, ir.StringLiteral{Value: "closed"}}, list.List)
	assert.NotEmpty(t, warnings)
}

func TestLabelTagsEveryWarning(t *testing.T) {
	t.Parallel()

	warnings := []diagnostics.Warning{diagnostics.New("X", diagnostics.Info, "msg")}
	labeled := exprmap.Label(warnings, "users.id")

	require.Len(t, labeled, 1)
	assert.Equal(t, "users.id", labeled[0].Object)
}
