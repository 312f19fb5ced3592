package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCLI executes the root command with args and returns stdout, stderr
// and the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	code := run(context.Background(), append([]string{"--color=off"}, args...))
	return stdout.String(), stderr.String(), code
}

// resetFlags restores defaults left over from earlier runs of the shared
// command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeSong(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderText(t *testing.T) {
	path := writeSong(t, t.TempDir(), "a.cho", "[C]one [Dm]two\n")
	out, errOut, code := runCLI(t, "render", "--format=text", "--width=0", "--standalone=false", "--output=", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "C   Dm\none two\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderConfigFormat(t *testing.T) {
	dir := t.TempDir()
	writeSong(t, dir, "chordpro.toml", "[render]\nformat = \"lines\"\n")
	path := writeSong(t, dir, "a.cho", "[G]la\n")
	out, errOut, code := runCLI(t, "render", "--standalone=false", "--output=", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "song-line") {
		t.Fatalf("config format not applied:\n%s", out)
	}
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	path := writeSong(t, dir, "a.cho", "{title:A}\n[ C ]la\n")

	out, _, code := runCLI(t, "fmt", "--check", dir)
	if code == 0 {
		t.Fatal("--check should fail on an unformatted song")
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("--check output = %q", out)
	}

	out, errOut, code := runCLI(t, "fmt", "--stdout", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "{t: A}\n[C]la\n" {
		t.Fatalf("--stdout output = %q", out)
	}

	if _, errOut, code := runCLI(t, "fmt", path); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if _, _, code := runCLI(t, "fmt", "--check", path); code != 0 {
		t.Fatal("formatted song still reported as changed")
	}
}

func TestParseScanErrorExitCode(t *testing.T) {
	path := writeSong(t, t.TempDir(), "bad.cho", "bad\x01\n")
	_, errOut, code := runCLI(t, "parse", "--format=pretty", "--diag-format=pretty", path)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "LEX1001") {
		t.Fatalf("stderr lacks the diagnostic:\n%s", errOut)
	}
	if strings.Contains(errOut, "chordpro: errors reported") {
		t.Fatal("reported errors were printed twice")
	}
}

func TestInfoJSON(t *testing.T) {
	path := writeSong(t, t.TempDir(), "a.cho", "{t: Hello}\n{artist: Somebody}\nla\n")
	out, errOut, code := runCLI(t, "info", "--format=json", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var info songInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if info.Title != "Hello" || len(info.Meta["artist"]) != 1 {
		t.Fatalf("info = %+v", info)
	}
}

func TestTokenizeYAML(t *testing.T) {
	path := writeSong(t, t.TempDir(), "a.cho", "[C]la\n")
	out, errOut, code := runCLI(t, "tokenize", "--format=yaml", "--diag-format=pretty", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "kind: Chord") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestBook(t *testing.T) {
	dir := t.TempDir()
	writeSong(t, dir, "a.cho", "{t: First}\n")
	writeSong(t, dir, "b.cho", "{t: Second}\n")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out, errOut, code := runCLI(t, "book", "--ui=off", "--title=Mine", "--output=", "--cache=true", dir)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{"<title>Mine</title>", "First", "Second"} {
		if !strings.Contains(out, want) {
			t.Errorf("book lacks %q", want)
		}
	}
	if !strings.Contains(errOut, "2 of 2 songs rendered") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, code := runCLI(t, "version", "--format=json", "--full")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload["tool"] != "chordpro" || payload["version"] == "" || payload["git_commit"] == "" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"sometimes", false, true},
	}
	for _, tt := range tests {
		got, err := useColor(tt.in, os.Stderr)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("useColor(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "On": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error for invalid mode")
	}
}
