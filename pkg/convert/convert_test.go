// SPDX-License-Identifier: Apache-2.0

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/convert"
	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
)

func TestConvertSimpleTable(t *testing.T) {
	t.Parallel()

	input := `CREATE TABLE users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		is_active BOOLEAN DEFAULT true
	);`

	result, err := convert.Convert(input, convert.Options{})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "CREATE TABLE users (")
	assert.Contains(t, result.Output, "id INTEGER PRIMARY KEY")
	assert.Contains(t, result.Output, "email TEXT NOT NULL")
	assert.Contains(t, result.Output, "is_active INTEGER DEFAULT 1")
	assert.NotContains(t, result.Output, "PRAGMA")
}

func TestConvertForeignKeysDroppedByDefault(t *testing.T) {
	t.Parallel()

	input := `
		CREATE TABLE users (id SERIAL PRIMARY KEY);
		CREATE TABLE orders (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id)
		);
	`

	result, err := convert.Convert(input, convert.Options{})
	require.NoError(t, err)

	assert.NotContains(t, result.Output, "REFERENCES")
}

func TestConvertForeignKeysKeptAndOrderedWhenEnabled(t *testing.T) {
	t.Parallel()

	input := `
		CREATE TABLE orders (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id)
		);
		CREATE TABLE users (id SERIAL PRIMARY KEY);
	`

	result, err := convert.Convert(input, convert.Options{EnableForeignKeys: true})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "PRAGMA foreign_keys = ON;")
	assert.Contains(t, result.Output, "REFERENCES users")
	assert.Less(t, indexOf(result.Output, "CREATE TABLE users"), indexOf(result.Output, "CREATE TABLE orders"))
}

func TestConvertStrictModeFailsOnLossyDiagnostic(t *testing.T) {
	t.Parallel()

	input := `CREATE TABLE t (flag BOOLEAN);`

	_, err := convert.Convert(input, convert.Options{Strict: true})

	require.Error(t, err)
	violation, ok := err.(*diagnostics.StrictViolationError)
	require.True(t, ok)
	assert.NotEmpty(t, violation.Warnings)
}

func TestConvertSchemaFilterDropsOtherSchemas(t *testing.T) {
	t.Parallel()

	input := `
		CREATE TABLE public.kept (id INTEGER);
		CREATE TABLE other.dropped (id INTEGER);
	`

	result, err := convert.Convert(input, convert.Options{})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "kept")
	assert.NotContains(t, result.Output, "dropped")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
