// SPDX-License-Identifier: Apache-2.0

// Package typemap is the pure, total function from a PostgreSQL type to a
// SQLite type affinity, emitting one or more diagnostics for every lossy
// mapping.
package typemap

import (
	"fmt"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// MapColumns assigns SqliteType to every column in the model, following a
// Domain reference through to the recorded base type when the domain's
// definition survived the schema filter.
func MapColumns(model *ir.SchemaModel) []diagnostics.Warning {
	domains := domainBaseTypes(model.Domains)
	var warnings []diagnostics.Warning

	for _, t := range model.Tables {
		for _, col := range t.Columns {
			label := t.Name.Name.Normalized + "." + col.Name.Normalized
			sqliteType, w := mapType(col.PgType, domains, label)
			st := sqliteType
			col.SqliteType = &st
			warnings = append(warnings, w...)
		}
	}

	return warnings
}

func domainBaseTypes(domains []*ir.DomainDef) map[string]ir.PgType {
	m := make(map[string]ir.PgType, len(domains))
	for _, d := range domains {
		m[d.Name.Name.Normalized] = d.BaseType
	}
	return m
}

func mapType(pg ir.PgType, domains map[string]ir.PgType, label string) (ir.SqliteType, []diagnostics.Warning) {
	switch t := pg.(type) {
	case ir.SmallInt:
		return ir.SQLiteInteger, warn(diagnostics.TypeWidthIgnored, diagnostics.Info,
			"smallint width not enforced; stored as SQLite's 64-bit INTEGER", label)

	case ir.Integer, ir.BigInt:
		return ir.SQLiteInteger, nil

	case ir.SmallSerial, ir.Serial, ir.BigSerial:
		// Normally rewritten to Integer by the planner before the type
		// mapper ever sees them; handled here defensively.
		return ir.SQLiteInteger, nil

	case ir.Numeric:
		return ir.SQLiteNumeric, warn(diagnostics.NumericPrecisionLoss, diagnostics.Lossy,
			"numeric precision/scale not enforced by SQLite's NUMERIC affinity", label)

	case ir.Real, ir.DoublePrecision:
		return ir.SQLiteReal, nil

	case ir.Text:
		return ir.SQLiteText, nil

	case ir.Varchar:
		if t.Length != nil {
			return ir.SQLiteText, warn(diagnostics.VarcharLengthIgnored, diagnostics.Lossy,
				"varchar length not enforced by SQLite's TEXT affinity", label)
		}
		return ir.SQLiteText, nil

	case ir.Char:
		if t.Length != nil {
			return ir.SQLiteText, warn(diagnostics.CharLengthIgnored, diagnostics.Lossy,
				"char length not enforced by SQLite's TEXT affinity", label)
		}
		return ir.SQLiteText, nil

	case ir.Boolean:
		return ir.SQLiteInteger, warn(diagnostics.BooleanAsInteger, diagnostics.Lossy,
			"boolean stored as 0/1 INTEGER; SQLite has no boolean type", label)

	case ir.Date:
		return ir.SQLiteText, warn(diagnostics.DatetimeTextStorage, diagnostics.Lossy,
			"date stored as ISO-8601 TEXT; SQLite has no native date type", label)

	case ir.Time:
		warnings := warn(diagnostics.DatetimeTextStorage, diagnostics.Lossy,
			"time stored as ISO-8601 TEXT; SQLite has no native time type", label)
		if t.WithTZ {
			warnings = append(warnings, warn(diagnostics.TimezoneLoss, diagnostics.Lossy,
				"time zone offset not preserved by SQLite's TEXT storage", label)...)
		}
		return ir.SQLiteText, warnings

	case ir.Timestamp:
		warnings := warn(diagnostics.DatetimeTextStorage, diagnostics.Lossy,
			"timestamp stored as ISO-8601 TEXT; SQLite has no native timestamp type", label)
		if t.WithTZ {
			warnings = append(warnings, warn(diagnostics.TimezoneLoss, diagnostics.Lossy,
				"time zone offset not preserved by SQLite's TEXT storage", label)...)
		}
		return ir.SQLiteText, warnings

	case ir.Interval:
		return ir.SQLiteText, warn(diagnostics.IntervalAsText, diagnostics.Lossy,
			"interval stored as TEXT; SQLite has no interval type", label)

	case ir.Bytea:
		return ir.SQLiteBlob, nil

	case ir.Uuid:
		return ir.SQLiteText, warn(diagnostics.UUIDAsText, diagnostics.Lossy,
			"uuid stored as TEXT; SQLite has no native uuid type", label)

	case ir.Json:
		return ir.SQLiteText, nil

	case ir.Jsonb:
		return ir.SQLiteText, warn(diagnostics.JSONBLoss, diagnostics.Lossy,
			"jsonb stored as TEXT; binary encoding and containment operators are lost", label)

	case ir.Inet, ir.Cidr, ir.MacAddr:
		return ir.SQLiteText, warn(diagnostics.NetworkAsText, diagnostics.Lossy,
			"network address type stored as TEXT", label)

	case ir.Point, ir.Line, ir.Lseg, ir.Box, ir.Path, ir.Polygon, ir.Circle:
		return ir.SQLiteText, warn(diagnostics.GeoAsText, diagnostics.Lossy,
			"geometric type stored as TEXT", label)

	case ir.Money:
		return ir.SQLiteText, warn(diagnostics.MoneyAsText, diagnostics.Lossy,
			"money stored as TEXT; currency formatting and arithmetic are lost", label)

	case ir.Bit, ir.VarBit:
		return ir.SQLiteText, warn(diagnostics.BitAsText, diagnostics.Lossy,
			"bit string stored as TEXT", label)

	case ir.Xml:
		return ir.SQLiteText, warn(diagnostics.XMLAsText, diagnostics.Lossy,
			"xml stored as TEXT; no schema validation", label)

	case ir.Int4Range, ir.Int8Range, ir.NumRange, ir.TsRange, ir.TsTzRange, ir.DateRange:
		return ir.SQLiteText, warn(diagnostics.RangeAsText, diagnostics.Lossy,
			"range type stored as TEXT; bound inclusivity and range operators are lost", label)

	case ir.Enum:
		return ir.SQLiteText, warn(diagnostics.EnumAsText, diagnostics.Lossy,
			"enum stored as TEXT; SQLite cannot enforce the value set", label)

	case ir.Domain:
		return mapDomain(t.Name, domains, label)

	case ir.Array:
		return ir.SQLiteText, warn(diagnostics.ArrayLossy, diagnostics.Lossy,
			"array stored as TEXT; element type and cardinality are lost", label)

	case ir.Other:
		return ir.SQLiteText, warn(diagnostics.TypeUnknown, diagnostics.Lossy,
			fmt.Sprintf("unrecognized type %q mapped to TEXT", t.Name), label)

	default:
		panic(fmt.Sprintf("typemap: unreachable pg type %T", pg))
	}
}

func mapDomain(name string, domains map[string]ir.PgType, label string) (ir.SqliteType, []diagnostics.Warning) {
	base, ok := domains[ir.NewIdent(name).Normalized]
	if !ok {
		return ir.SQLiteText, warn(diagnostics.DomainFlattened, diagnostics.Info,
			"domain definition not found (filtered out or unresolved); flattened to TEXT", label)
	}

	sqliteType, warnings := mapType(base, domains, label)
	warnings = append(warnings, warn(diagnostics.DomainBaseTypeMapped, diagnostics.Info,
		fmt.Sprintf("domain flattened to its base type %s", base.String()), label)...)
	return sqliteType, warnings
}

func warn(code string, sev diagnostics.Severity, msg, label string) []diagnostics.Warning {
	return []diagnostics.Warning{diagnostics.New(code, sev, msg).WithObject(label)}
}
