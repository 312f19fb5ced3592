// Package project loads the songbook configuration, chordpro.toml:
//
//	[book]
//	title = "Campfire songs"
//	extensions = [".cho", ".chopro"]
//
//	[render]
//	format = "html"     # html | lines | text
//	theme = "default"   # default | print
//	css = "extra.css"   # appended to the stylesheet
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Render formats.
const (
	FormatHTML  = "html"
	FormatLines = "lines"
	FormatText  = "text"
)

// DefaultExtensions are the song file extensions recognized without
// configuration.
var DefaultExtensions = []string{".cho", ".chopro", ".chordpro", ".crd", ".pro"}

var (
	// ErrUnknownFormat indicates an unsupported [render].format.
	ErrUnknownFormat = errors.New("unknown render format")
	// ErrBadExtension indicates an entry of [book].extensions without a leading dot.
	ErrBadExtension = errors.New("extension must start with '.'")
)

type Book struct {
	Title      string   `toml:"title"`
	Extensions []string `toml:"extensions"`
}

type Render struct {
	Format string `toml:"format"`
	Theme  string `toml:"theme"`
	CSS    string `toml:"css"`
}

// Config is a decoded chordpro.toml. Dir is the directory holding the
// file and anchors relative paths.
type Config struct {
	Book   Book   `toml:"book"`
	Render Render `toml:"render"`

	Dir string `toml:"-"`
	// Unknown lists keys present in the file that are not understood.
	Unknown []string `toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Book:   Book{Extensions: slices.Clone(DefaultExtensions)},
		Render: Render{Format: FormatHTML},
		Dir:    ".",
	}
}

// Load decodes and validates the file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	if !meta.IsDefined("book", "extensions") || len(cfg.Book.Extensions) == 0 {
		cfg.Book.Extensions = slices.Clone(DefaultExtensions)
	}
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest chordpro.toml above startDir, or returns
// Default when there is none.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	return cfg, true, err
}

// Validate checks values that the CLI cannot recover from.
func (c *Config) Validate() error {
	c.Render.Format = strings.ToLower(strings.TrimSpace(c.Render.Format))
	switch c.Render.Format {
	case "":
		c.Render.Format = FormatHTML
	case FormatHTML, FormatLines, FormatText:
	default:
		return fmt.Errorf("%w %q (expected: html|lines|text)", ErrUnknownFormat, c.Render.Format)
	}
	for i, ext := range c.Book.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[book].extensions: %w: %q", ErrBadExtension, ext)
		}
		c.Book.Extensions[i] = ext
	}
	return nil
}

// IsSong reports whether path has one of the configured extensions.
func (c Config) IsSong(path string) bool {
	return slices.Contains(c.Book.Extensions, strings.ToLower(filepath.Ext(path)))
}

// ExtraCSS reads [render].css relative to the config directory.
func (c Config) ExtraCSS() (string, error) {
	if c.Render.CSS == "" {
		return "", nil
	}
	p := c.Render.CSS
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.Dir, p)
	}
	// #nosec G304 -- path comes from the user's own config
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("[render].css: %w", err)
	}
	return string(data), nil
}
