// SPDX-License-Identifier: Apache-2.0

// Package convert is the public entry point: it wires the parser,
// schema filter, planner, and every transform stage into a single
// Convert call and applies the strict-mode gate.
package convert

import (
	"github.com/oapi-codegen/nullable"

	"github.com/pg2sqlc/pg2sqlc/pkg/constraint"
	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/exprmap"
	"github.com/pg2sqlc/pg2sqlc/pkg/indexxform"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
	"github.com/pg2sqlc/pg2sqlc/pkg/nameresolve"
	"github.com/pg2sqlc/pg2sqlc/pkg/pgparse"
	"github.com/pg2sqlc/pg2sqlc/pkg/planner"
	"github.com/pg2sqlc/pg2sqlc/pkg/render"
	"github.com/pg2sqlc/pg2sqlc/pkg/schemafilter"
	"github.com/pg2sqlc/pg2sqlc/pkg/topo"
	"github.com/pg2sqlc/pg2sqlc/pkg/typemap"
)

// Options configures a single Convert call.
type Options struct {
	// Schema is the target schema to retain when IncludeAllSchemas is
	// false. Unset is distinct from explicitly empty; both fall back to
	// schemafilter.DefaultSchema.
	Schema nullable.Nullable[string]
	// IncludeAllSchemas bypasses the schema filter and instead runs the
	// name resolver's collision-renaming path.
	IncludeAllSchemas bool
	// EnableForeignKeys keeps FK constraints and emits the PRAGMA
	// prelude; when false every FK, table- and column-level, is dropped.
	EnableForeignKeys bool
	// Strict fails the conversion if any diagnostic is Lossy or worse.
	Strict bool
}

// targetSchema resolves the effective schema name per the Schema option's
// tri-state: an unset value and an explicitly empty value both fall back
// to the default schema.
func (o Options) targetSchema() string {
	if v, err := o.Schema.Get(); err == nil && v != "" {
		return v
	}
	return schemafilter.DefaultSchema
}

// Result is a completed, non-strict-violating conversion.
type Result struct {
	Output      string
	Diagnostics []diagnostics.Warning
}

// Convert runs the full pipeline over input and returns the rendered
// SQLite DDL plus every diagnostic raised along the way. When
// opts.Strict is set and any diagnostic is Lossy or worse, it returns a
// *diagnostics.StrictViolationError instead.
func Convert(input string, opts Options) (Result, error) {
	model, warnings := pgparse.Parse(input)

	schemafilter.Filter(model, opts.targetSchema(), opts.IncludeAllSchemas)

	warnings = append(warnings, planner.Run(model)...)
	warnings = append(warnings, typemap.MapColumns(model)...)
	warnings = append(warnings, exprmap.ApplyToDefaults(model)...)
	warnings = append(warnings, constraint.Transform(model, opts.EnableForeignKeys)...)
	warnings = append(warnings, indexxform.Transform(model)...)
	warnings = append(warnings, nameresolve.Resolve(model, opts.IncludeAllSchemas)...)

	tables := orderTables(model, opts.EnableForeignKeys)

	output := render.Render(tables, model.Indexes, opts.EnableForeignKeys)

	if opts.Strict {
		if err := diagnostics.CheckStrict(warnings); err != nil {
			return Result{}, err
		}
	}

	return Result{Output: output, Diagnostics: diagnostics.Sorted(warnings)}, nil
}

// orderTables decides table emission order: topological when foreign keys
// are enabled (so referenced tables precede their referrers), otherwise a
// plain alphabetical pass — disabling FK emission skips the topological
// sorter entirely.
func orderTables(model *ir.SchemaModel, enableFK bool) []*ir.Table {
	if !enableFK {
		return topo.Alphabetical(model.Tables)
	}
	return topo.Sort(model.Tables)
}
