// SPDX-License-Identifier: Apache-2.0

// Package nameresolve strips the schema component out of every qualified
// name in the model, or, when the caller asked to keep every schema,
// renames each table involved in a cross-schema name collision to its own
// schema__name and repoints every FK and index that referred to it.
package nameresolve

import (
	"fmt"
	"sort"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Resolve strips or disambiguates schema qualification across model in
// place. keepAllSchemas mirrors convert.Options.IncludeAllSchemas.
func Resolve(model *ir.SchemaModel, keepAllSchemas bool) []diagnostics.Warning {
	if !keepAllSchemas {
		clearAllSchemas(model)
		return nil
	}
	return renameCollisions(model)
}

func clearAllSchemas(model *ir.SchemaModel) {
	for _, t := range model.Tables {
		t.Name.Schema = nil
		for _, col := range t.Columns {
			if col.References != nil {
				col.References.Table.Schema = nil
			}
		}
		for i, c := range t.Constraints {
			fk, ok := c.(ir.ForeignKeyConstraint)
			if !ok {
				continue
			}
			fk.RefTable.Schema = nil
			t.Constraints[i] = fk
		}
	}
	for _, idx := range model.Indexes {
		idx.Table.Schema = nil
	}
}

// renameCollisions groups tables by their unqualified normalized name.
// Any group with two or more members is ambiguous once schemas are
// dropped, so each member is renamed schema__name instead of bare name.
func renameCollisions(model *ir.SchemaModel) []diagnostics.Warning {
	var warnings []diagnostics.Warning

	groups := make(map[string][]*ir.Table)
	for _, t := range model.Tables {
		groups[t.Name.Name.Normalized] = append(groups[t.Name.Name.Normalized], t)
	}

	renamed := make(map[string]ir.QualifiedName)

	for key, tables := range groups {
		if len(tables) < 2 {
			continue
		}
		for _, t := range tables {
			old := t.Name
			newName := prefixedName(t.Name)
			renamed[oldKey(old)] = ir.NewQualifiedName(newName)
			t.Name = ir.NewQualifiedName(newName)
			warnings = append(warnings, diagnostics.New(
				diagnostics.SchemaPrefixed, diagnostics.Lossy,
				fmt.Sprintf("table %q renamed to %q to avoid a cross-schema name collision", key, newName.Normalized),
			).WithObject(newName.Normalized))
		}
	}

	for _, t := range model.Tables {
		if t.Name.Schema != nil {
			t.Name.Schema = nil
		}
		for _, col := range t.Columns {
			if col.References != nil {
				col.References.Table = resolveRef(col.References.Table, renamed)
			}
		}
		for i, c := range t.Constraints {
			if fk, ok := c.(ir.ForeignKeyConstraint); ok {
				fk.RefTable = resolveRef(fk.RefTable, renamed)
				t.Constraints[i] = fk
			}
		}
	}
	for _, idx := range model.Indexes {
		idx.Table = resolveRef(idx.Table, renamed)
	}

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Object < warnings[j].Object })
	return warnings
}

// resolveRef substitutes ref's new name if it was part of a renamed
// collision group, otherwise simply clears its schema.
func resolveRef(ref ir.QualifiedName, renamed map[string]ir.QualifiedName) ir.QualifiedName {
	if newName, ok := renamed[oldKey(ref)]; ok {
		return newName
	}
	ref.Schema = nil
	return ref
}

func prefixedName(name ir.QualifiedName) ir.Ident {
	schema := "public"
	if name.Schema != nil {
		schema = name.Schema.Normalized
	}
	return ir.NewIdent(schema + "__" + name.Name.Normalized)
}

// oldKey uniquely identifies a qualified name by its pre-resolution
// (schema, name) pair, used to look a renamed reference back up.
func oldKey(name ir.QualifiedName) string {
	if name.Schema != nil {
		return name.Schema.Normalized + "." + name.Name.Normalized
	}
	return "public." + name.Name.Normalized
}
