package diagfmt

import (
	"path/filepath"

	"chordpro/internal/source"
)

// fileFor returns the file a span points into, or nil when the span does
// not belong to fs. The zero span means "no location".
func fileFor(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || sp == (source.Span{}) || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		base := fs.BaseDir()
		if base == "" {
			base = "."
		}
		if rel, err := filepath.Rel(base, filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return source.BaseName(f.Path)
	}
	return f.Path
}
