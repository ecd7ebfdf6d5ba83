// SPDX-License-Identifier: Apache-2.0

// Package schemafilter retains only the schema objects that belong to a
// target PostgreSQL schema (default "public"), or passes everything
// through untouched when the caller asks to keep every schema.
package schemafilter

import "github.com/pg2sqlc/pg2sqlc/pkg/ir"

// Filter drops every table, index, sequence, enum, domain, pending alter,
// and pending identity whose qualified name's schema does not match
// target. An absent schema on an object is treated as belonging to the
// target, since unqualified names in a dump are assumed to live in the
// target schema. When keepAll is true the model is returned unchanged.
func Filter(model *ir.SchemaModel, target string, keepAll bool) {
	if keepAll {
		return
	}

	normalizedTarget := ir.NewIdent(target).Normalized

	belongs := func(q ir.QualifiedName) bool {
		return q.Schema == nil || q.Schema.Normalized == normalizedTarget
	}

	tables := model.Tables[:0]
	for _, t := range model.Tables {
		if belongs(t.Name) {
			tables = append(tables, t)
		}
	}
	model.Tables = tables

	indexes := model.Indexes[:0]
	for _, i := range model.Indexes {
		if belongs(i.Table) {
			indexes = append(indexes, i)
		}
	}
	model.Indexes = indexes

	sequences := model.Sequences[:0]
	for _, s := range model.Sequences {
		if belongs(s.Name) {
			sequences = append(sequences, s)
		}
	}
	model.Sequences = sequences

	enums := model.Enums[:0]
	for _, e := range model.Enums {
		if belongs(e.Name) {
			enums = append(enums, e)
		}
	}
	model.Enums = enums

	domains := model.Domains[:0]
	for _, d := range model.Domains {
		if belongs(d.Name) {
			domains = append(domains, d)
		}
	}
	model.Domains = domains

	alters := model.AlterConstraints[:0]
	for _, a := range model.AlterConstraints {
		if belongs(a.Table) {
			alters = append(alters, a)
		}
	}
	model.AlterConstraints = alters

	identities := model.IdentityColumns[:0]
	for _, a := range model.IdentityColumns {
		if belongs(a.Table) {
			identities = append(identities, a)
		}
	}
	model.IdentityColumns = identities
}

// DefaultSchema is the target schema used when the caller does not
// specify one.
const DefaultSchema = "public"
