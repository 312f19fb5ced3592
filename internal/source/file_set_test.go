package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("song.cho", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("song.cho", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, ok := fs.GetLatest("song.cho")
	if !ok || latestID != id2 {
		t.Errorf("Expected latest ID %d, got %d (ok=%v)", id2, latestID, ok)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cho", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLineCol(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cho", []byte("ab\ncd\n\nef")))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // the newline belongs to the line it ends
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		if got := file.LineCol(tt.off); got != tt.want {
			t.Errorf("LineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cho", []byte("{t: X}\n[C]la\n\nend")))

	want := []string{"{t: X}", "[C]la", "", "end", ""}
	for i, w := range want {
		if got := file.GetLine(uint32(i + 1)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i+1, got, w)
		}
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{"plain", "a\nb", "a\nb", 0},
		{"crlf", "a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", "a\rb", "a\rb", 0},
		{"bom", "\xEF\xBB\xBFa", "a", FileHadBOM},
		{"nfc", "cafe\u0301", "caf\u00e9", FileNormalizedNFC},
		{"bom and crlf", "\xEF\xBB\xBFa\r\n", "a\n", FileHadBOM | FileNormalizedCRLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.cho")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF{t: Song}\r\n[G]la\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "{t: Song}\n[G]la\n" {
		t.Errorf("content = %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", file.Flags)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.cho")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cho", []byte("[Am]la")))
	if got := file.Text(Span{Start: 1, End: 3}); got != "Am" {
		t.Errorf("Text = %q", got)
	}
	if got := file.Text(Span{Start: 4, End: 100}); got != "la" {
		t.Errorf("Text past end = %q", got)
	}
}
