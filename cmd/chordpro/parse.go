package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chordpro/internal/diagfmt"
	"chordpro/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] song.cho",
	Short: "Print the node tree of a song",
	Long:  `Parse scans and assembles a song and prints its directives, chord lines and lyric lines`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	parseCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|sarif)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	result, err := parseSong(cmd, args[0], diagFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatNodesPretty(out, result.Nodes)
	case "json":
		return diagfmt.FormatNodesJSON(out, result.Nodes)
	case "yaml":
		return diagfmt.FormatNodesYAML(out, result.Nodes)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// parseSong runs driver.Parse with the global flags and prints its
// diagnostics. A scan error is returned as errReported.
func parseSong(cmd *cobra.Command, path, diagFormat string) (*driver.ParseResult, error) {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return nil, err
	}
	result, err := driver.Parse(cmd.Context(), path, driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Timings:        g.timings,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, diagFormat); err != nil {
		return nil, err
	}
	if result.Err != nil {
		return nil, errReported
	}
	return result, nil
}
