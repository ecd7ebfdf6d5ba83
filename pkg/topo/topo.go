// SPDX-License-Identifier: Apache-2.0

// Package topo orders tables so that every table referenced by a foreign
// key is emitted before the table that references it, falling back to a
// plain alphabetical order when the reference graph has a cycle.
package topo

import (
	"sort"

	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
)

// Sort returns tables ordered so FK targets precede their referrers,
// breaking ties alphabetically by normalized table name. Self-references
// are ignored; a cycle elsewhere in the graph falls back to Alphabetical.
func Sort(tables []*ir.Table) []*ir.Table {
	byName := make(map[string]*ir.Table, len(tables))
	for _, t := range tables {
		byName[t.Name.Name.Normalized] = t
	}

	// edges[u] holds every table name that depends on u, i.e. an edge
	// from u to v means v must come after u.
	edges := make(map[string][]string, len(tables))
	indegree := make(map[string]int, len(tables))
	for _, t := range tables {
		indegree[t.Name.Name.Normalized] = 0
	}

	addEdge := func(from, to string) {
		if from == to {
			return
		}
		if _, ok := byName[from]; !ok {
			return
		}
		edges[from] = append(edges[from], to)
		indegree[to]++
	}

	for _, t := range tables {
		self := t.Name.Name.Normalized
		for _, c := range t.Constraints {
			if fk, ok := c.(ir.ForeignKeyConstraint); ok {
				addEdge(fk.RefTable.Name.Normalized, self)
			}
		}
		for _, col := range t.Columns {
			if col.References != nil {
				addEdge(col.References.Table.Name.Normalized, self)
			}
		}
	}

	for from, tos := range edges {
		sort.Strings(tos)
		edges[from] = tos
	}

	var queue []string
	for name, deg := range indegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		order = append(order, next)

		var newlyZero []string
		for _, dep := range edges[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				newlyZero = append(newlyZero, dep)
			}
		}
		sort.Strings(newlyZero)
		queue = mergeSorted(queue, newlyZero)
	}

	if len(order) != len(tables) {
		return Alphabetical(tables)
	}

	out := make([]*ir.Table, len(order))
	for i, name := range order {
		out[i] = byName[name]
	}
	return out
}

// mergeSorted inserts each element of add into queue, keeping queue sorted.
// Both slices are typically tiny, so one binary-search insertion per
// element is simplest.
func mergeSorted(queue, add []string) []string {
	for _, name := range add {
		i := sort.SearchStrings(queue, name)
		queue = append(queue, "")
		copy(queue[i+1:], queue[i:])
		queue[i] = name
	}
	return queue
}

// Alphabetical sorts tables by normalized name alone, used when FK
// emission is disabled or the reference graph contains a cycle.
func Alphabetical(tables []*ir.Table) []*ir.Table {
	out := make([]*ir.Table, len(tables))
	copy(out, tables)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Name.Normalized < out[j].Name.Name.Normalized
	})
	return out
}
