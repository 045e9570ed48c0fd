package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canon/internal/diagfmt"
	"canon/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.roc",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Diagnostics.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Diagnostics.Items(), result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	if result.Expr == nil {
		return exitCodeError{code: 1}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Expr)
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Expr)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Diagnostics.HasErrors() {
		return exitCodeError{code: 1}
	}
	return nil
}
