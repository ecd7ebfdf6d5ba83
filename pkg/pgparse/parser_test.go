// SPDX-License-Identifier: Apache-2.0

package pgparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
	"github.com/pg2sqlc/pg2sqlc/pkg/ir"
	"github.com/pg2sqlc/pg2sqlc/pkg/pgparse"
)

func TestParseCreateTableWithInlinePrimaryKeyAndCheck(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			age INTEGER CHECK (age >= 0),
			email TEXT NOT NULL UNIQUE
		);
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.Tables, 1)

	table := model.Tables[0]
	assert.Equal(t, "users", table.Name.Name.Normalized)
	require.Len(t, table.Columns, 3)

	id := table.Columns[0]
	assert.True(t, id.IsPrimaryKey)
	assert.True(t, id.NotNull)

	age := table.Columns[1]
	assert.NotNil(t, age.Check)

	email := table.Columns[2]
	assert.True(t, email.NotNull)
	assert.True(t, email.IsUnique)
}

func TestParseCreateTableWithTableLevelForeignKey(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE TABLE orders (
			id SERIAL PRIMARY KEY,
			user_id INTEGER,
			CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.Tables, 1)
	require.Len(t, model.Tables[0].Constraints, 1)

	fk, ok := model.Tables[0].Constraints[0].(ir.ForeignKeyConstraint)
	require.True(t, ok)
	assert.Equal(t, "users", fk.RefTable.Name.Normalized)
	require.NotNil(t, fk.OnDelete)
	assert.Equal(t, ir.FkCascade, *fk.OnDelete)
}

func TestParseCreateTableWithInlineIdentityColumn(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE TABLE events (
			id INTEGER GENERATED ALWAYS AS IDENTITY,
			name TEXT
		);
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.IdentityColumns, 1)
	assert.Equal(t, "events", model.IdentityColumns[0].Table.Name.Normalized)
	assert.Equal(t, "id", model.IdentityColumns[0].Column.Normalized)
}

func TestParseCreateIndexWithMethodAndWhereClause(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE INDEX idx_active_users ON users USING gin (email) WHERE deleted_at IS NULL;
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.Indexes, 1)

	idx := model.Indexes[0]
	require.NotNil(t, idx.Method)
	assert.Equal(t, ir.IndexGin, *idx.Method)
	assert.NotNil(t, idx.WhereClause)
}

func TestParseCreateSequenceOwnedBy(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE SEQUENCE users_id_seq OWNED BY users.id;
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.Sequences, 1)
	require.NotNil(t, model.Sequences[0].OwnedBy)
	assert.Equal(t, "users", model.Sequences[0].OwnedBy.Table.Name.Normalized)
	assert.Equal(t, "id", model.Sequences[0].OwnedBy.Column.Normalized)
}

func TestParseCreateEnumAndDomain(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE TYPE mood AS ENUM ('sad', 'ok', 'happy');
		CREATE DOMAIN positive_int AS INTEGER CHECK (VALUE > 0);
	`)

	assert.Empty(t, warnings)
	require.Len(t, model.Enums, 1)
	assert.Equal(t, []string{"sad", "ok", "happy"}, model.Enums[0].Values)

	require.Len(t, model.Domains, 1)
	assert.NotNil(t, model.Domains[0].Check)
}

func TestParseIgnoresUnrecognizedStatementKinds(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`
		CREATE VIEW v AS SELECT 1;
		GRANT SELECT ON v TO PUBLIC;
	`)

	assert.Empty(t, warnings)
	assert.Empty(t, model.Tables)
}

func TestParseReportsSyntaxErrorAsParseSkipped(t *testing.T) {
	t.Parallel()

	model, warnings := pgparse.Parse(`CREATE TABLE ( ;;; not valid sql`)

	assert.NotNil(t, model)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.ParseSkipped, warnings[0].Code)
	assert.Equal(t, diagnostics.Error, warnings[0].Severity)
}
