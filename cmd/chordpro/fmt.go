package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chordpro/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Rewrite songs in canonical spelling",
	Long:  `Fmt abbreviates directive names, respaces values and chord definitions, and drops trailing blanks`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "list files that need formatting and fail if any do")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted songs to stdout instead of rewriting files")
	fmtCmd.Flags().String("config", "", "path to chordpro.toml (song extensions)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if toStdout && check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if toStdout && outputFormat != "text" {
		return errors.New("fmt: --stdout is only supported with text output")
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, configPath, args[0])
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:  check,
		Stdout: toStdout,
		IsSong: cfg.IsSong,
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, changed bool
	for _, res := range results {
		if res.Err != nil {
			failed = true
		}
		if res.Changed {
			changed = true
		}
	}
	switch outputFormat {
	case "text":
		if err := renderFmtText(out, errOut, results, check, toStdout, g.quiet); err != nil {
			return err
		}
	case "json":
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if failed {
		return errors.New("fmt: failed to format some files")
	}
	if check && changed {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, toStdout, quiet bool) error {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		var err error
		switch {
		case toStdout:
			_, err = out.Write(res.Formatted)
		case quiet || !res.Changed:
		case check:
			_, err = fmt.Fprintln(out, res.Path)
		default:
			_, err = fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		item := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		payload = append(payload, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
