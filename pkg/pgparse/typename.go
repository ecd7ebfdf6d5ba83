// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// convertTypeName maps a pg_query_go TypeName onto the PgType algebra.
// Unrecognized custom type names become ir.Other; the planner later
// re-types those into ir.Enum or ir.Domain once it has seen every CREATE
// TYPE / CREATE DOMAIN statement in the script, since a column definition
// alone can't tell the two apart.
func convertTypeName(tn *pgq.TypeName) ir.PgType {
	parts := typeNameParts(tn)
	mods := typmodInts(tn)
	if len(parts) == 0 {
		return ir.Other{}
	}

	// Built-in types never arrive as more than one part once pg_catalog
	// has been stripped; a user-defined type's schema qualifier (if any)
	// is dropped here for good, so only the bare name is later matched
	// against enum and domain names.
	base := baseTypeFromNames(parts[len(parts)-1], mods)
	if len(tn.GetArrayBounds()) > 0 {
		return ir.Array{Element: base}
	}
	return base
}

func typeNameParts(tn *pgq.TypeName) []string {
	all := stringListFromNodes(tn.GetNames())
	parts := make([]string, 0, len(all))
	for _, p := range all {
		if p == "pg_catalog" {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

func typmodInts(tn *pgq.TypeName) []int {
	var out []int
	for _, node := range tn.GetTypmods() {
		c := node.GetAConst()
		if c == nil {
			continue
		}
		if iv, ok := c.GetVal().(*pgq.A_Const_Ival); ok {
			out = append(out, int(iv.Ival.GetIval()))
		}
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func baseTypeFromNames(name string, mods []int) ir.PgType {
	switch name {
	case "int2", "smallint":
		return ir.SmallInt{}
	case "int4", "int", "integer":
		return ir.Integer{}
	case "int8", "bigint":
		return ir.BigInt{}
	case "float4", "real":
		return ir.Real{}
	case "float8", "double precision":
		return ir.DoublePrecision{}
	case "numeric", "decimal":
		switch len(mods) {
		case 2:
			return ir.Numeric{Precision: intPtr(mods[0]), Scale: intPtr(mods[1])}
		case 1:
			return ir.Numeric{Precision: intPtr(mods[0])}
		default:
			return ir.Numeric{}
		}
	case "bool", "boolean":
		return ir.Boolean{}
	case "text":
		return ir.Text{}
	case "varchar", "character varying":
		if len(mods) == 1 {
			return ir.Varchar{Length: intPtr(mods[0])}
		}
		return ir.Varchar{}
	case "bpchar", "char", "character":
		if len(mods) == 1 {
			return ir.Char{Length: intPtr(mods[0])}
		}
		return ir.Char{}
	case "date":
		return ir.Date{}
	case "time":
		return ir.Time{}
	case "timetz":
		return ir.Time{WithTZ: true}
	case "timestamp":
		return ir.Timestamp{}
	case "timestamptz":
		return ir.Timestamp{WithTZ: true}
	case "interval":
		return ir.Interval{}
	case "bytea":
		return ir.Bytea{}
	case "uuid":
		return ir.Uuid{}
	case "json":
		return ir.Json{}
	case "jsonb":
		return ir.Jsonb{}
	case "inet":
		return ir.Inet{}
	case "cidr":
		return ir.Cidr{}
	case "macaddr", "macaddr8":
		return ir.MacAddr{}
	case "point":
		return ir.Point{}
	case "line":
		return ir.Line{}
	case "lseg":
		return ir.Lseg{}
	case "box":
		return ir.Box{}
	case "path":
		return ir.Path{}
	case "polygon":
		return ir.Polygon{}
	case "circle":
		return ir.Circle{}
	case "money":
		return ir.Money{}
	case "bit":
		if len(mods) == 1 {
			return ir.Bit{Length: intPtr(mods[0])}
		}
		return ir.Bit{}
	case "varbit", "bit varying":
		if len(mods) == 1 {
			return ir.VarBit{Length: intPtr(mods[0])}
		}
		return ir.VarBit{}
	case "xml":
		return ir.Xml{}
	case "int4range":
		return ir.Int4Range{}
	case "int8range":
		return ir.Int8Range{}
	case "numrange":
		return ir.NumRange{}
	case "tsrange":
		return ir.TsRange{}
	case "tstzrange":
		return ir.TsTzRange{}
	case "daterange":
		return ir.DateRange{}
	case "serial", "serial4":
		return ir.Serial{}
	case "bigserial", "serial8":
		return ir.BigSerial{}
	case "smallserial", "serial2":
		return ir.SmallSerial{}
	default:
		return ir.Other{Name: name}
	}
}

// deparseTypeNameFallback renders a TypeName pg_query_go's own way, used
// only when a caller needs the literal cast target text (e.g. inside a
// CAST(... AS <type>) expression) rather than the structured PgType.
func deparseTypeNameFallback(tn *pgq.TypeName) string {
	s, err := pgq.DeparseTypeName(tn)
	if err != nil {
		return joinIdent(typeNameParts(tn))
	}
	return s
}
