// SPDX-License-Identifier: Apache-2.0

package ir

// SingleColumnPrimaryKey returns the index and sole column name of this
// table's table-level PrimaryKeyConstraint, if it has exactly one and that
// constraint names exactly one column. Several stages (the planner's
// SERIAL/IDENTITY resolution, the constraint transformer's integer-PK
// promotion) need this same lookup.
func (t *Table) SingleColumnPrimaryKey() (idx int, column Ident, ok bool) {
	for i, c := range t.Constraints {
		if pk, isPK := c.(PrimaryKeyConstraint); isPK && len(pk.Columns) == 1 {
			return i, pk.Columns[0], true
		}
	}
	return -1, Ident{}, false
}

// FindColumn returns the column with the given normalized name, if present.
func (t *Table) FindColumn(normalizedName string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name.Normalized == normalizedName {
			return c, true
		}
	}
	return nil, false
}

// RemoveConstraint drops the table-level constraint at idx.
func (t *Table) RemoveConstraint(idx int) {
	t.Constraints = append(t.Constraints[:idx], t.Constraints[idx+1:]...)
}
