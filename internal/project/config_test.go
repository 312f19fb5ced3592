package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"chordpro/internal/project"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, project.ConfigName)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `
[book]
title = "Campfire"
extensions = [".CHO", ".txt"]

[render]
format = "Text"
theme = "print"
css = "extra.css"
colour = "blue"
`)
	if err := os.WriteFile(filepath.Join(dir, "extra.css"), []byte(".x{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := project.Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Book.Title != "Campfire" || cfg.Render.Format != project.FormatText || cfg.Render.Theme != "print" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Book.Extensions, []string{".cho", ".txt"}) {
		t.Errorf("extensions = %v", cfg.Book.Extensions)
	}
	if !reflect.DeepEqual(cfg.Unknown, []string{"render.colour"}) {
		t.Errorf("unknown keys = %v", cfg.Unknown)
	}
	if !cfg.IsSong("a/b/Song.CHO") || cfg.IsSong("notes.md") {
		t.Error("IsSong mismatch")
	}
	css, err := cfg.ExtraCSS()
	if err != nil || css != ".x{}" {
		t.Errorf("ExtraCSS = %q, %v", css, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "[book]\ntitle = \"x\"\n")
	cfg, err := project.Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Format != project.FormatHTML || !reflect.DeepEqual(cfg.Book.Extensions, project.DefaultExtensions) {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		body string
		err  error
	}{
		{"[render]\nformat = \"pdf\"\n", project.ErrUnknownFormat},
		{"[book]\nextensions = [\"cho\"]\n", project.ErrBadExtension},
	}
	for _, tt := range tests {
		_, err := project.Load(writeConfig(t, t.TempDir(), tt.body))
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: got %v, want %v", tt.body, err, tt.err)
		}
	}
	if _, err := project.Load(writeConfig(t, t.TempDir(), "[book\n")); err == nil {
		t.Error("expected a TOML syntax error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[book]\ntitle = \"Up\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, ok, err := project.Discover(nested)
	if err != nil || !ok || cfg.Book.Title != "Up" {
		t.Fatalf("Discover = %+v, %v, %v", cfg, ok, err)
	}
	got, ok, err := project.FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if g, _ := filepath.EvalSymlinks(got); g != want {
		t.Errorf("root = %s, want %s", got, root)
	}
}

func TestCombineDigest(t *testing.T) {
	var d project.Digest
	if !d.IsZero() {
		t.Error("zero digest")
	}
	a := project.Combine(d, []byte("v1"))
	b := project.Combine(d, []byte("v2"))
	if a == b || a.IsZero() {
		t.Error("Combine should depend on its parts")
	}
}
