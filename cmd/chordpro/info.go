package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"chordpro/internal/driver"
)

var infoCmd = &cobra.Command{
	Use:   "info [flags] song.cho",
	Short: "Show the title, subtitle and metadata of a song",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

type songInfo struct {
	Path     string              `json:"path" yaml:"path"`
	Title    string              `json:"title" yaml:"title"`
	Subtitle string              `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Meta     map[string][]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	Tokens   int                 `json:"tokens" yaml:"tokens"`
	Nodes    int                 `json:"nodes" yaml:"nodes"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	result, err := parseSong(cmd, args[0], "pretty")
	if err != nil {
		return err
	}
	info := collectSongInfo(result)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return writeSongInfo(out, info)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func collectSongInfo(res *driver.ParseResult) songInfo {
	return songInfo{
		Path:     res.File.Path,
		Title:    res.Title(),
		Subtitle: res.Summary.Subtitle,
		Meta:     res.Summary.Meta,
		Tokens:   len(res.Tokens),
		Nodes:    len(res.Nodes),
	}
}

func writeSongInfo(w io.Writer, info songInfo) error {
	if _, err := fmt.Fprintf(w, "title:    %s\n", info.Title); err != nil {
		return err
	}
	if info.Subtitle != "" {
		fmt.Fprintf(w, "subtitle: %s\n", info.Subtitle)
	}
	keys := make([]string, 0, len(info.Meta))
	for k := range info.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range info.Meta[k] {
			fmt.Fprintf(w, "%-9s %s\n", k+":", v)
		}
	}
	_, err := fmt.Fprintf(w, "tokens:   %d\nnodes:    %d\n", info.Tokens, info.Nodes)
	return err
}
