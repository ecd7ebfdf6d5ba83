// SPDX-License-Identifier: Apache-2.0

package diagnostics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
)

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", diagnostics.Info.String())
	assert.Equal(t, "lossy", diagnostics.Lossy.String())
	assert.Equal(t, "unsupported", diagnostics.Unsupported.String())
	assert.Equal(t, "error", diagnostics.Error.String())
}

func TestSeverityStringPanicsOnUnknownValue(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_ = diagnostics.Severity(99).String()
	})
}

func TestWarningWithObject(t *testing.T) {
	t.Parallel()

	w := diagnostics.New(diagnostics.BooleanAsInteger, diagnostics.Lossy, "stored as 0/1").
		WithObject("users.is_active")

	assert.Equal(t, "users.is_active", w.Object)
	assert.Equal(t, "[BOOLEAN_AS_INTEGER] users.is_active: stored as 0/1", w.String())
}

func TestWarningStringWithoutObject(t *testing.T) {
	t.Parallel()

	w := diagnostics.New(diagnostics.ParseSkipped, diagnostics.Error, "bad syntax")

	assert.Equal(t, "[PARSE_SKIPPED] bad syntax", w.String())
}

func TestSortedOrdersByObjectThenCode(t *testing.T) {
	t.Parallel()

	warnings := []diagnostics.Warning{
		diagnostics.New(diagnostics.BooleanAsInteger, diagnostics.Lossy, "b").WithObject("users"),
		diagnostics.New(diagnostics.UUIDAsText, diagnostics.Lossy, "a").WithObject("accounts"),
		diagnostics.New(diagnostics.EnumAsText, diagnostics.Lossy, "c").WithObject("users"),
	}

	sorted := diagnostics.Sorted(warnings)

	require.Len(t, sorted, 3)
	assert.Equal(t, "accounts", sorted[0].Object)
	assert.Equal(t, "users", sorted[1].Object)
	assert.Equal(t, diagnostics.BooleanAsInteger, sorted[1].Code)
	assert.Equal(t, diagnostics.EnumAsText, sorted[2].Code)
}

func TestCheckStrictFailsOnLossyOrWorse(t *testing.T) {
	t.Parallel()

	warnings := []diagnostics.Warning{
		diagnostics.New(diagnostics.IndexMethodIgnored, diagnostics.Info, "dropped method"),
		diagnostics.New(diagnostics.BooleanAsInteger, diagnostics.Lossy, "stored as 0/1"),
	}

	err := diagnostics.CheckStrict(warnings)

	require.Error(t, err)
	violation, ok := err.(*diagnostics.StrictViolationError)
	require.True(t, ok)
	require.Len(t, violation.Warnings, 1)
	assert.Equal(t, diagnostics.BooleanAsInteger, violation.Warnings[0].Code)
}

func TestCheckStrictPassesWhenOnlyInfo(t *testing.T) {
	t.Parallel()

	warnings := []diagnostics.Warning{
		diagnostics.New(diagnostics.IndexMethodIgnored, diagnostics.Info, "dropped method"),
	}

	assert.NoError(t, diagnostics.CheckStrict(warnings))
}

func TestDestinationFromFlagDefaultsToStderr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, diagnostics.StderrDestination(), diagnostics.DestinationFromFlag(""))
	assert.Equal(t, diagnostics.StderrDestination(), diagnostics.DestinationFromFlag("stderr"))
}

func TestReportWritesSortedWarningsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "warnings.txt")
	warnings := []diagnostics.Warning{
		diagnostics.New(diagnostics.BooleanAsInteger, diagnostics.Lossy, "stored as 0/1").WithObject("users"),
	}

	err := diagnostics.Report(warnings, diagnostics.FileDestination(path))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "BOOLEAN_AS_INTEGER")
}

func TestReportNoOpOnEmptyWarnings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "should-not-exist.txt")

	err := diagnostics.Report(nil, diagnostics.FileDestination(path))
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
