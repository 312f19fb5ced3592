package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"chordpro/internal/format"
	"chordpro/internal/source"
)

type FormatOptions struct {
	// Check reports changes without writing files.
	Check bool
	// Stdout keeps files untouched and returns the formatted bytes only.
	Stdout bool
	// IsSong filters files found under directory arguments.
	IsSong func(string) bool
}

type FormatResult struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
}

// FormatPaths formats every song in paths. Directories are expanded with
// ListSongs. Per-file failures are reported in the result, not returned.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		songs, err := ListSongs(p, opts.IsSong)
		if err != nil {
			return nil, err
		}
		files = append(files, songs...)
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatOne(path, opts))
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	content, flags := source.Normalize(raw)
	fs := source.NewFileSet()
	id := fs.Add(path, content, flags)
	out, err := format.FormatFile(fs.Get(id))
	if err != nil {
		res.Err = err
		return res
	}
	res.Formatted = out
	res.Changed = !bytes.Equal(raw, out)
	if !res.Changed || opts.Check || opts.Stdout {
		return res
	}
	if err := writeFileAtomic(path, out); err != nil {
		res.Err = err
	}
	return res
}

func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp := path + ".fmt.tmp"
	if err := os.WriteFile(tmp, data, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
