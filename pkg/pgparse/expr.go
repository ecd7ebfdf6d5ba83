// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	"strconv"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// convertExpr lifts a pg_query_go expression node into the Expr algebra.
// Anything this function does not decompose structurally falls back to a
// RawExpr carrying pg_query_go's own deparse of the node, mirroring the
// Display-based fallback the original parser used.
func convertExpr(node *pgq.Node) ir.Expr {
	if node == nil {
		return ir.NullLiteral{}
	}

	switch {
	case node.GetAConst() != nil:
		return convertAConst(node.GetAConst())

	case node.GetColumnRef() != nil:
		return convertColumnRef(node.GetColumnRef())

	case node.GetFuncCall() != nil:
		return convertFuncCall(node.GetFuncCall())

	case node.GetTypeCast() != nil:
		tc := node.GetTypeCast()
		return ir.CastExpr{
			Expr:     convertExpr(tc.GetArg()),
			TypeName: deparseTypeNameFallback(tc.GetTypeName()),
		}

	case node.GetAExpr() != nil:
		return convertAExpr(node.GetAExpr())

	case node.GetBoolExpr() != nil:
		return convertBoolExpr(node.GetBoolExpr())

	case node.GetNullTest() != nil:
		nt := node.GetNullTest()
		return ir.IsNullExpr{
			Expr:    convertExpr(nt.GetArg()),
			Negated: nt.GetNulltesttype() == pgq.NullTestType_IS_NOT_NULL,
		}

	case node.GetSqlvalueFunction() != nil:
		return convertSQLValueFunction(node.GetSqlvalueFunction())

	default:
		return deparseFallback(node)
	}
}

func convertAConst(c *pgq.A_Const) ir.Expr {
	if c.GetIsnull() {
		return ir.NullLiteral{}
	}
	switch v := c.GetVal().(type) {
	case *pgq.A_Const_Ival:
		return ir.IntegerLiteral{Value: int64(v.Ival.GetIval())}
	case *pgq.A_Const_Fval:
		if f, err := strconv.ParseFloat(v.Fval.GetFval(), 64); err == nil {
			return ir.FloatLiteral{Value: f}
		}
		return ir.RawExpr{SQL: v.Fval.GetFval()}
	case *pgq.A_Const_Sval:
		return ir.StringLiteral{Value: v.Sval.GetSval()}
	case *pgq.A_Const_Boolval:
		return ir.BooleanLiteral{Value: v.Boolval.GetBoolval()}
	case *pgq.A_Const_Bsval:
		return ir.RawExpr{SQL: "B'" + v.Bsval.GetBsval() + "'"}
	default:
		return ir.NullLiteral{}
	}
}

func convertColumnRef(cr *pgq.ColumnRef) ir.Expr {
	parts := make([]string, 0, len(cr.GetFields()))
	for _, f := range cr.GetFields() {
		if s := f.GetString_(); s != nil {
			parts = append(parts, s.GetSval())
			continue
		}
		if f.GetAStar() != nil {
			parts = append(parts, "*")
		}
	}
	return ir.ColumnRef{Name: joinIdent(parts)}
}

func convertFuncCall(fc *pgq.FuncCall) ir.Expr {
	nameParts := stringListFromNodes(fc.GetFuncname())
	name := ""
	if len(nameParts) > 0 {
		name = nameParts[len(nameParts)-1]
	}

	args := make([]ir.Expr, 0, len(fc.GetArgs()))
	for _, a := range fc.GetArgs() {
		args = append(args, convertExpr(a))
	}

	if seq, ok := detectNextval(name, args); ok {
		return seq
	}

	return ir.FunctionCallExpr{Name: name, Args: args}
}

// detectNextval recognizes nextval('seq') and nextval('seq'::regclass),
// the form every real PostgreSQL dump actually emits for a SERIAL or
// IDENTITY column default.
func detectNextval(name string, args []ir.Expr) (ir.Expr, bool) {
	if name != "nextval" || len(args) != 1 {
		return nil, false
	}
	seq, ok := unwrapStringLiteral(args[0])
	if !ok {
		return nil, false
	}
	return ir.NextValExpr{Sequence: seq}, true
}

func unwrapStringLiteral(e ir.Expr) (string, bool) {
	switch v := e.(type) {
	case ir.StringLiteral:
		return v.Value, true
	case ir.CastExpr:
		return unwrapStringLiteral(v.Expr)
	default:
		return "", false
	}
}

func convertAExpr(ae *pgq.A_Expr) ir.Expr {
	op := ""
	if ops := stringListFromNodes(ae.GetName()); len(ops) > 0 {
		op = ops[0]
	}

	switch ae.GetKind() {
	case pgq.A_Expr_Kind_AEXPR_OP:
		if ae.GetLexpr() == nil {
			return ir.UnaryOpExpr{Op: op, Expr: convertExpr(ae.GetRexpr())}
		}
		return ir.BinaryOpExpr{
			Left:  convertExpr(ae.GetLexpr()),
			Op:    op,
			Right: convertExpr(ae.GetRexpr()),
		}

	case pgq.A_Expr_Kind_AEXPR_IN:
		return ir.InListExpr{
			Expr:    convertExpr(ae.GetLexpr()),
			List:    convertExprList(ae.GetRexpr()),
			Negated: op == "<>",
		}

	case pgq.A_Expr_Kind_AEXPR_BETWEEN, pgq.A_Expr_Kind_AEXPR_NOT_BETWEEN:
		bounds := convertExprList(ae.GetRexpr())
		var low, high ir.Expr = ir.NullLiteral{}, ir.NullLiteral{}
		if len(bounds) == 2 {
			low, high = bounds[0], bounds[1]
		}
		return ir.BetweenExpr{
			Expr:    convertExpr(ae.GetLexpr()),
			Low:     low,
			High:    high,
			Negated: ae.GetKind() == pgq.A_Expr_Kind_AEXPR_NOT_BETWEEN,
		}

	case pgq.A_Expr_Kind_AEXPR_OP_ANY:
		// col = ANY(ARRAY[...]) becomes col IN (...); every other operator,
		// and any right-hand side that isn't a literal array, is left as
		// Raw rather than risk a semantically wrong rewrite (in particular
		// `col <> ANY(ARRAY[...])` is NOT the same predicate as NOT IN).
		if op == "=" {
			if elems, ok := arrayLiteralElements(ae.GetRexpr()); ok {
				return ir.NestedExpr{Expr: ir.InListExpr{
					Expr: convertExpr(ae.GetLexpr()),
					List: elems,
				}}
			}
		}
		return deparseFallback(wrapAExpr(ae))

	default:
		return deparseFallback(wrapAExpr(ae))
	}
}

func wrapAExpr(ae *pgq.A_Expr) *pgq.Node {
	return &pgq.Node{Node: &pgq.Node_AExpr{AExpr: ae}}
}

func arrayLiteralElements(node *pgq.Node) ([]ir.Expr, bool) {
	arr := node.GetAArrayExpr()
	if arr == nil {
		return nil, false
	}
	return convertExprList(node), true
}

func convertExprList(node *pgq.Node) []ir.Expr {
	if node == nil {
		return nil
	}
	if arr := node.GetAArrayExpr(); arr != nil {
		out := make([]ir.Expr, 0, len(arr.GetElements()))
		for _, e := range arr.GetElements() {
			out = append(out, convertExpr(e))
		}
		return out
	}
	if lst := node.GetList(); lst != nil {
		out := make([]ir.Expr, 0, len(lst.GetItems()))
		for _, e := range lst.GetItems() {
			out = append(out, convertExpr(e))
		}
		return out
	}
	return []ir.Expr{convertExpr(node)}
}

func convertBoolExpr(be *pgq.BoolExpr) ir.Expr {
	args := be.GetArgs()
	if be.GetBoolop() == pgq.BoolExprType_NOT_EXPR && len(args) == 1 {
		return ir.UnaryOpExpr{Op: "NOT", Expr: convertExpr(args[0])}
	}

	op := "AND"
	if be.GetBoolop() == pgq.BoolExprType_OR_EXPR {
		op = "OR"
	}

	if len(args) == 0 {
		return ir.BooleanLiteral{Value: op == "AND"}
	}

	expr := convertExpr(args[0])
	for _, a := range args[1:] {
		expr = ir.BinaryOpExpr{Left: expr, Op: op, Right: convertExpr(a)}
	}
	return expr
}

func convertSQLValueFunction(svf *pgq.SQLValueFunction) ir.Expr {
	switch svf.GetOp() {
	case pgq.SQLValueFunctionOp_SVFOP_CURRENT_TIMESTAMP, pgq.SQLValueFunctionOp_SVFOP_CURRENT_TIMESTAMP_N:
		return ir.CurrentTimestampExpr{}
	case pgq.SQLValueFunctionOp_SVFOP_CURRENT_DATE:
		return ir.FunctionCallExpr{Name: "current_date"}
	case pgq.SQLValueFunctionOp_SVFOP_CURRENT_TIME, pgq.SQLValueFunctionOp_SVFOP_CURRENT_TIME_N:
		return ir.FunctionCallExpr{Name: "current_time"}
	default:
		return ir.RawExpr{SQL: "CURRENT_TIMESTAMP"}
	}
}

// deparseFallback renders the node with pg_query_go's own Deparse, the
// documented way to re-render a bare expression with this library: wrap
// it as the sole target of a throwaway SELECT and strip that wrapper back
// off. Used for expression shapes this package does not decompose.
func deparseFallback(node *pgq.Node) ir.Expr {
	sql, err := pgq.DeparseExpr(node)
	if err != nil {
		return ir.RawExpr{SQL: "<unrepresentable expression>"}
	}
	return ir.RawExpr{SQL: sql}
}
