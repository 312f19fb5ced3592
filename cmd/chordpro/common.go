package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chordpro/internal/diag"
	"chordpro/internal/diagfmt"
	"chordpro/internal/project"
	"chordpro/internal/source"
	"chordpro/internal/version"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("errors reported")

func errorsAlreadyReported(err error) bool {
	return errors.Is(err, errReported)
}

type globalFlags struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if g.color, err = flags.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// useColor resolves --color for f.
func useColor(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// applyColorFlag sets the fatih/color default used by version output.
func applyColorFlag(cmd *cobra.Command) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	on, err := useColor(g.color, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !on
	return nil
}

// reportDiagnostics prints bag to stderr in format (pretty|json|sarif).
// Info entries are only shown with --timings.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	bag.Sort()
	if !g.timings {
		bag = withoutInfo(bag)
	}
	if bag.Len() == 0 {
		return nil
	}
	out := cmd.ErrOrStderr()
	switch format {
	case "", "pretty":
		colored, err := useColor(g.color, os.Stderr)
		if err != nil {
			return err
		}
		return diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   1,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: !g.quiet,
		})
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(out, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "chordpro",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}

func withoutInfo(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(bag.Len())
	for _, d := range bag.Items() {
		if d.Severity != diag.SevInfo {
			out.Add(d)
		}
	}
	return out
}

// loadConfig reads --config when given, otherwise discovers chordpro.toml
// upward from start. Unknown keys are warned about unless --quiet.
func loadConfig(cmd *cobra.Command, explicit, start string) (project.Config, error) {
	var (
		cfg project.Config
		err error
	)
	if explicit != "" {
		cfg, err = project.Load(explicit)
	} else {
		if st, statErr := os.Stat(start); statErr == nil && !st.IsDir() {
			start = filepath.Dir(start)
		}
		cfg, _, err = project.Discover(start)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if g, gerr := readGlobalFlags(cmd); gerr == nil && !g.quiet {
		for _, key := range cfg.Unknown {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: unknown key %q\n", project.ConfigName, key)
		}
	}
	return cfg, nil
}

func absOrSame(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
