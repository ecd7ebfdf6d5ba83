// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/oapi-codegen/nullable"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pg2sqlc/pg2sqlc/cmd/flags"
	"github.com/pg2sqlc/pg2sqlc/pkg/convert"
	"github.com/pg2sqlc/pg2sqlc/pkg/diagnostics"
)

// Version is the pg2sqlc version.
var Version = "development"

func init() {
	viper.SetEnvPrefix("PG2SQLC")
	viper.AutomaticEnv()

	flags.Bind(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:          "pg2sqlc",
	Short:        "Translate PostgreSQL 16 DDL into SQLite 3 DDL",
	SilenceUsage: true,
	Version:      Version,
	RunE:         run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	input, err := os.ReadFile(flags.Input())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts := convert.Options{
		Schema:            nullable.NewNullableWithValue(flags.Schema()),
		IncludeAllSchemas: flags.IncludeAllSchemas(),
		EnableForeignKeys: flags.EnableForeignKeys(),
		Strict:            flags.Strict(),
	}

	result, err := convert.Convert(string(input), opts)
	if err != nil {
		reportDiagnostics(err, cmd.ErrOrStderr())
		return err
	}

	if err := diagnostics.Report(result.Diagnostics, diagnostics.DestinationFromFlag(flags.EmitWarnings())); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}

	out, err := openOutput(flags.Output())
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	if _, err := io.WriteString(out, result.Output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	pterm.Success.Printfln("wrote %d diagnostic(s)", len(result.Diagnostics))
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func reportDiagnostics(err error, w io.Writer) {
	if violation, ok := err.(*diagnostics.StrictViolationError); ok {
		for _, warning := range violation.Warnings {
			pterm.Warning.WithWriter(w).Println(warning.String())
		}
		return
	}
	pterm.Error.WithWriter(w).Println(err.Error())
}
