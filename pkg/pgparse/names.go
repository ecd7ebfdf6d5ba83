// SPDX-License-Identifier: Apache-2.0

package pgparse

import (
	"strings"

	pgq "github.com/pganalyze/pg_query_go/v6"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// qualifiedNameFromRangeVar builds a QualifiedName from a CREATE/ALTER
// TABLE target, which pg_query_go always represents as a RangeVar.
func qualifiedNameFromRangeVar(rv *pgq.RangeVar) ir.QualifiedName {
	if rv.GetSchemaname() == "" {
		return ir.NewQualifiedName(ir.NewIdent(rv.GetRelname()))
	}
	return ir.NewSchemaQualifiedName(ir.NewIdent(rv.GetSchemaname()), ir.NewIdent(rv.GetRelname()))
}

// qualifiedNameFromNodes builds a QualifiedName from a raw dotted name
// list, as used for CREATE TYPE / CREATE DOMAIN targets. Only the last two
// parts are kept, mirroring how PostgreSQL
// itself resolves a possibly database-qualified name down to schema.object.
func qualifiedNameFromNodes(nodes []*pgq.Node) ir.QualifiedName {
	parts := stringListFromNodes(nodes)
	switch len(parts) {
	case 0:
		return ir.NewQualifiedName(ir.NewIdent(""))
	case 1:
		return ir.NewQualifiedName(ir.NewIdent(parts[0]))
	default:
		n := len(parts)
		return ir.NewSchemaQualifiedName(ir.NewIdent(parts[n-2]), ir.NewIdent(parts[n-1]))
	}
}

// nodeToStringList reads a dotted-name argument that pg_query_go may
// represent either as a List of String nodes or, for a single-word value
// like the "none" in SEQUENCE ... OWNED BY NONE, as a bare String node.
func nodeToStringList(node *pgq.Node) []string {
	if node == nil {
		return nil
	}
	if lst := node.GetList(); lst != nil {
		return stringListFromNodes(lst.GetItems())
	}
	if s := node.GetString_(); s != nil {
		return []string{s.GetSval()}
	}
	return nil
}

func stringListFromNodes(nodes []*pgq.Node) []string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := n.GetString_(); s != nil {
			parts = append(parts, s.GetSval())
		}
	}
	return parts
}

func identListFromKeys(nodes []*pgq.Node) []ir.Ident {
	idents := make([]ir.Ident, 0, len(nodes))
	for _, n := range nodes {
		if s := n.GetString_(); s != nil {
			idents = append(idents, ir.NewIdent(s.GetSval()))
		}
	}
	return idents
}

func optionalIdent(name string) *ir.Ident {
	if name == "" {
		return nil
	}
	id := ir.NewIdent(name)
	return &id
}

func joinIdent(parts []string) string {
	return strings.Join(parts, ".")
}
