package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chordpro/internal/diagfmt"
	"chordpro/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] song.cho",
	Short: "Print the token stream of a song",
	Long:  `Tokenize scans a song and prints every token with its position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	tokenizeCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|sarif)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Timings:        g.timings,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, diagFormat); err != nil {
		return err
	}

	// tokens up to a scan error are still printed
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case "yaml":
		err = diagfmt.FormatTokensYAML(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Err != nil {
		return errReported
	}
	return nil
}
