package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chordpro/internal/driver"
	"chordpro/internal/project"
	"chordpro/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] song.cho",
	Short: "Render a song as HTML or terminal text",
	Long: `Render prints a song in one of three formats:
  html   directive/chordline/lyricline markup
  lines  song-line markup with chords above their lyrics
  text   plain text for the terminal
Defaults come from the nearest chordpro.toml; flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("format", "", "output format (html|lines|text)")
	renderCmd.Flags().String("theme", "", "stylesheet theme for --standalone ("+strings.Join(render.Themes(), "|")+")")
	renderCmd.Flags().String("css", "", "extra CSS file appended to the stylesheet")
	renderCmd.Flags().String("config", "", "path to chordpro.toml")
	renderCmd.Flags().Bool("standalone", false, "wrap HTML in a full document with a stylesheet")
	renderCmd.Flags().Int("width", 0, "truncate text output to this many columns (0 = terminal width)")
	renderCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(cmd, configPath, path)
	if err != nil {
		return err
	}
	if err := overrideRender(cmd, &cfg); err != nil {
		return err
	}
	extra, err := cfg.ExtraCSS()
	if err != nil {
		return err
	}

	standalone, err := cmd.Flags().GetBool("standalone")
	if err != nil {
		return fmt.Errorf("failed to get standalone flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := parseSong(cmd, path, "pretty")
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	colored := false
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		defer f.Close()
		out = f
	} else if cfg.Render.Format == project.FormatText {
		if colored, err = useColor(g.color, os.Stdout); err != nil {
			return err
		}
		if width == 0 && isTerminal(os.Stdout) {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
	}

	return driver.Render(cmd.Context(), out, result, driver.RenderOptions{
		Format:     cfg.Render.Format,
		Theme:      cfg.Render.Theme,
		ExtraCSS:   extra,
		Standalone: standalone,
		Color:      colored,
		Width:      width,
	})
}

// overrideRender applies --format, --theme and --css over the config.
func overrideRender(cmd *cobra.Command, cfg *project.Config) error {
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"format", &cfg.Render.Format},
		{"theme", &cfg.Render.Theme},
		{"css", &cfg.Render.CSS},
	} {
		if cmd.Flags().Lookup(f.name) == nil || !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
		if f.name == "css" && v != "" {
			// flag paths are relative to the working directory
			cfg.Render.CSS = absOrSame(v)
		}
	}
	return cfg.Validate()
}
