package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chordpro/internal/buildpipeline"
	"chordpro/internal/driver"
	"chordpro/internal/render"
)

var bookCmd = &cobra.Command{
	Use:   "book [flags] <directory>",
	Short: "Build one HTML songbook from a directory of songs",
	Long: `Book parses every song under a directory in parallel and writes a single
HTML document with an index. Settings come from chordpro.toml in the
directory (or above it); flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runBook,
}

func init() {
	bookCmd.Flags().String("config", "", "path to chordpro.toml")
	bookCmd.Flags().String("format", "", "song markup (html|lines)")
	bookCmd.Flags().String("theme", "", "stylesheet theme ("+strings.Join(render.Themes(), "|")+")")
	bookCmd.Flags().String("css", "", "extra CSS file appended to the stylesheet")
	bookCmd.Flags().String("title", "", "songbook title")
	bookCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	bookCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	bookCmd.Flags().Bool("cache", true, "reuse token streams of unchanged songs")
	bookCmd.Flags().Bool("clear-cache", false, "drop the token cache before building")
	bookCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	bookCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|sarif)")
}

func runBook(cmd *cobra.Command, args []string) error {
	dir := args[0]
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(cmd, configPath, dir)
	if err != nil {
		return err
	}
	if err := overrideRender(cmd, &cfg); err != nil {
		return err
	}
	if flags.Changed("title") {
		if cfg.Book.Title, err = flags.GetString("title"); err != nil {
			return fmt.Errorf("failed to get title flag: %w", err)
		}
	}

	output, err := flags.GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	diagFormat, err := flags.GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}

	req := buildpipeline.BookRequest{
		Dir:            dir,
		Config:         cfg,
		Jobs:           jobs,
		MaxDiagnostics: g.maxDiagnostics,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("chordpro")
		if err != nil {
			// building without a cache still works
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: token cache disabled: %v\n", err)
		} else {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			req.Cache = cache
		}
	}

	var result buildpipeline.BookResult
	if !g.quiet && shouldUseTUI(mode) {
		files, err := buildpipeline.BookFiles(req)
		if err != nil {
			return err
		}
		title := cfg.Book.Title
		if title == "" {
			title = "songbook"
		}
		result, err = runBookWithUI(cmd.Context(), title, files, req)
		if err != nil {
			return err
		}
	} else {
		if !g.quiet && g.timings {
			req.Progress = &buildpipeline.LogSink{W: cmd.ErrOrStderr()}
		}
		result, err = buildpipeline.BuildBook(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	if result.Bag != nil {
		if err := reportDiagnostics(cmd, result.Bag, result.FileSet, diagFormat); err != nil {
			return err
		}
	}
	if err := writeBook(cmd, output, result.HTML); err != nil {
		return err
	}
	if g.timings {
		if err := printStageTimings(cmd.ErrOrStderr(), result.Timings); err != nil {
			return err
		}
	}
	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d songs rendered\n", result.Rendered, len(result.Songs))
	}
	if result.Bag != nil && result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

func writeBook(cmd *cobra.Command, output, html string) (err error) {
	var out io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return fmt.Errorf("book: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("book: %w", closeErr)
			}
		}()
		out = f
	}
	_, err = io.WriteString(out, html)
	return err
}
