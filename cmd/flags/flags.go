// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Bind registers pg2sqlc's flags on cmd and binds each one into viper
// under the PG2SQLC_ env prefix, so every flag can also be set via its
// environment variable. --input is marked required, so cobra still
// rejects a run that does not pass it on the command line.
func Bind(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "path to the PostgreSQL DDL input file (required)")
	cmd.Flags().StringP("output", "o", "", "path to write the SQLite DDL output (default stdout)")
	cmd.Flags().StringP("schema", "s", "public", "target PostgreSQL schema to translate")
	cmd.Flags().Bool("include-all-schemas", false, "translate every schema instead of filtering to --schema")
	cmd.Flags().Bool("enable-foreign-keys", false, "keep foreign key constraints and emit PRAGMA foreign_keys = ON")
	cmd.Flags().Bool("strict", false, "fail the conversion if any diagnostic is lossy or worse")
	cmd.Flags().String("emit-warnings", "stderr", `where to write diagnostics: a file path or "stderr"`)

	cmd.MarkFlagRequired("input")

	viper.BindPFlag("INPUT", cmd.Flags().Lookup("input"))
	viper.BindPFlag("OUTPUT", cmd.Flags().Lookup("output"))
	viper.BindPFlag("SCHEMA", cmd.Flags().Lookup("schema"))
	viper.BindPFlag("INCLUDE_ALL_SCHEMAS", cmd.Flags().Lookup("include-all-schemas"))
	viper.BindPFlag("ENABLE_FOREIGN_KEYS", cmd.Flags().Lookup("enable-foreign-keys"))
	viper.BindPFlag("STRICT", cmd.Flags().Lookup("strict"))
	viper.BindPFlag("EMIT_WARNINGS", cmd.Flags().Lookup("emit-warnings"))
}

func Input() string           { return viper.GetString("INPUT") }
func Output() string          { return viper.GetString("OUTPUT") }
func Schema() string          { return viper.GetString("SCHEMA") }
func IncludeAllSchemas() bool { return viper.GetBool("INCLUDE_ALL_SCHEMAS") }
func EnableForeignKeys() bool { return viper.GetBool("ENABLE_FOREIGN_KEYS") }
func Strict() bool            { return viper.GetBool("STRICT") }
func EmitWarnings() string    { return viper.GetString("EMIT_WARNINGS") }
