// SPDX-License-Identifier: Apache-2.0

// Package ir defines the in-memory schema model shared by every stage of
// the conversion pipeline: identifiers, qualified names, the PostgreSQL and
// SQLite type algebras, the expression algebra, and the schema model they
// compose into.
package ir

import "strings"

// sqliteReserved is the set of SQLite reserved words that force quoting
// even when the identifier would otherwise be a legal bareword.
var sqliteReserved = map[string]bool{
	"abort": true, "action": true, "add": true, "after": true, "all": true,
	"alter": true, "always": true, "analyze": true, "and": true, "as": true,
	"asc": true, "attach": true, "autoincrement": true, "before": true,
	"begin": true, "between": true, "by": true, "cascade": true, "case": true,
	"cast": true, "check": true, "collate": true, "column": true,
	"commit": true, "conflict": true, "constraint": true, "create": true,
	"cross": true, "current": true, "current_date": true, "current_time": true,
	"current_timestamp": true, "database": true, "default": true,
	"deferrable": true, "deferred": true, "delete": true, "desc": true,
	"detach": true, "distinct": true, "do": true, "drop": true, "each": true,
	"else": true, "end": true, "escape": true, "except": true, "exclude": true,
	"exclusive": true, "exists": true, "explain": true, "fail": true,
	"filter": true, "first": true, "following": true, "for": true,
	"foreign": true, "from": true, "full": true, "generated": true,
	"glob": true, "group": true, "groups": true, "having": true, "if": true,
	"ignore": true, "immediate": true, "in": true, "index": true,
	"indexed": true, "initially": true, "inner": true, "insert": true,
	"instead": true, "intersect": true, "into": true, "is": true,
	"isnull": true, "join": true, "key": true, "last": true, "left": true,
	"like": true, "limit": true, "match": true, "materialized": true,
	"natural": true, "no": true, "not": true, "nothing": true,
	"notnull": true, "null": true, "nulls": true, "of": true, "offset": true,
	"on": true, "or": true, "order": true, "others": true, "outer": true,
	"over": true, "partition": true, "plan": true, "pragma": true,
	"preceding": true, "primary": true, "query": true, "raise": true,
	"range": true, "recursive": true, "references": true, "regexp": true,
	"reindex": true, "release": true, "rename": true, "replace": true,
	"restrict": true, "returning": true, "right": true, "rollback": true,
	"row": true, "rows": true, "savepoint": true, "select": true, "set": true,
	"table": true, "temp": true, "temporary": true, "then": true, "ties": true,
	"to": true, "transaction": true, "trigger": true, "unbounded": true,
	"union": true, "unique": true, "update": true, "using": true,
	"vacuum": true, "values": true, "view": true, "virtual": true,
	"when": true, "where": true, "window": true, "with": true,
	"without": true,
}

// Ident is a SQL identifier carrying both the source spelling and the
// normalized form used for equality, hashing, and map keys.
type Ident struct {
	Raw        string
	Normalized string
}

// NewIdent builds an identifier from an unquoted name, normalizing it to
// lowercase as PostgreSQL does for bare identifiers.
func NewIdent(name string) Ident {
	return Ident{Raw: name, Normalized: strings.ToLower(name)}
}

// NewQuotedIdent builds an identifier from a quoted name, preserving case.
func NewQuotedIdent(name string) Ident {
	return Ident{Raw: name, Normalized: name}
}

// NeedsQuotes reports whether this identifier must be double-quoted to be
// rendered safely as SQLite DDL.
func (id Ident) NeedsQuotes() bool {
	n := id.Normalized
	if n == "" {
		return true
	}
	if n[0] >= '0' && n[0] <= '9' {
		return true
	}
	for _, c := range n {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
			return true
		}
	}
	return sqliteReserved[n]
}

// ToSQL renders the identifier for SQLite output, quoting when necessary.
func (id Ident) ToSQL() string {
	if id.NeedsQuotes() {
		return `"` + strings.ReplaceAll(id.Normalized, `"`, `""`) + `"`
	}
	return id.Normalized
}

func (id Ident) String() string { return id.Normalized }

// QualifiedName is an optionally schema-qualified object name.
type QualifiedName struct {
	Schema *Ident
	Name   Ident
}

// NewQualifiedName builds an unqualified name.
func NewQualifiedName(name Ident) QualifiedName {
	return QualifiedName{Name: name}
}

// NewSchemaQualifiedName builds a schema-qualified name.
func NewSchemaQualifiedName(schema, name Ident) QualifiedName {
	s := schema
	return QualifiedName{Schema: &s, Name: name}
}

// Equal reports whether two qualified names refer to the same object,
// comparing both the schema (when present) and the name.
func (q QualifiedName) Equal(other QualifiedName) bool {
	if (q.Schema == nil) != (other.Schema == nil) {
		return false
	}
	if q.Schema != nil && q.Schema.Normalized != other.Schema.Normalized {
		return false
	}
	return q.Name.Normalized == other.Name.Normalized
}

// ToSQL renders the name for SQLite output: the schema prefix never
// survives to output (stripped by the name resolver stage).
func (q QualifiedName) ToSQL() string {
	return q.Name.ToSQL()
}

func (q QualifiedName) String() string {
	if q.Schema != nil {
		return q.Schema.Normalized + "." + q.Name.Normalized
	}
	return q.Name.Normalized
}
