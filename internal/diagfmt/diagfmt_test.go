package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"chordpro/internal/diag"
	"chordpro/internal/diagfmt"
	"chordpro/internal/lexer"
	"chordpro/internal/song"
	"chordpro/internal/source"
)

// scanWithBag scans content as song.cho and returns the file set and the
// diagnostics the lexer reported.
func scanWithBag(t *testing.T, content string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("song.cho", []byte(content))
	bag := diag.NewBag(10)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	if _, err := lx.Scan(); err == nil {
		t.Fatal("expected a scan error")
	}
	return fs, bag
}

func TestPretty(t *testing.T) {
	fs, bag := scanWithBag(t, "la\nbad\x01\n")
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 1, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"song.cho:2:4: ERROR LEX1001: unexpected control character\n",
		" 1 | la\n",
		" 2 | bad",
		"   |    ^\n",
		"note:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("colour escapes with Color disabled")
	}
}

func TestPrettyWideCaret(t *testing.T) {
	fs, bag := scanWithBag(t, "日本[G\n")
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	// the caret sits under '[' after two double-width runes
	if !strings.Contains(buf.String(), "   |     ^~\n") {
		t.Errorf("unexpected caret:\n%s", buf.String())
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.IOCacheError, Message: "cache unavailable"})
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bag, source.NewFileSet(), diagfmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "WARNING IO4002: cache unavailable\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	fs, bag := scanWithBag(t, "bad\x01")
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.File != "song.cho" || d.Location.StartLine != 1 || d.Location.StartCol != 4 {
		t.Fatalf("location = %+v", d.Location)
	}
}

func TestJSONMax(t *testing.T) {
	bag := diag.NewBag(5)
	for range 3 {
		bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "t"})
	}
	out := diagfmt.BuildDiagnosticsOutput(bag, nil, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
}

func TestSarif(t *testing.T) {
	fs, bag := scanWithBag(t, "[C\n")
	var buf bytes.Buffer
	meta := diagfmt.SarifRunMeta{ToolName: "chordpro", ToolVersion: "test", InvocationArgs: []string{"render", "song.cho"}}
	if err := diagfmt.Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if len(run.Results) != 1 || run.Results[0].RuleID != "LEX1003" || run.Results[0].Level != "error" {
		t.Fatalf("results = %+v", run.Results)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("song.cho", []byte("{t: x}"))
	tokens, err := lexer.New(fs.Get(id), lexer.Options{}).Scan()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if want := `  1: DirectiveOpen   "{" at 1:1-1:2`; first != want {
		t.Fatalf("first line = %q, want %q", first, want)
	}
}

func TestFormatTokensJSONAndYAML(t *testing.T) {
	tokens, err := lexer.ScanString("[C]la")
	if err != nil {
		t.Fatal(err)
	}
	var jbuf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&jbuf, tokens); err != nil {
		t.Fatal(err)
	}
	var fromJSON []diagfmt.TokenOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 2 || fromJSON[0].Kind != "Chord" || fromJSON[0].Text != "C" {
		t.Fatalf("json tokens = %+v", fromJSON)
	}

	var ybuf bytes.Buffer
	if err := diagfmt.FormatTokensYAML(&ybuf, tokens); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ybuf.String(), "kind: LyricRun") {
		t.Fatalf("yaml:\n%s", ybuf.String())
	}
}

func TestFormatNodes(t *testing.T) {
	nodes, err := song.Parse("{soc: Refrain}\n[G]la\n{eoc}\n# note\n")
	if err != nil {
		t.Fatal(err)
	}

	var pretty bytes.Buffer
	if err := diagfmt.FormatNodesPretty(&pretty, nodes); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(pretty.String(), "directive soc: \"Refrain\"\n  ") {
		t.Fatalf("pretty:\n%s", pretty.String())
	}

	var ybuf bytes.Buffer
	if err := diagfmt.FormatNodesYAML(&ybuf, nodes); err != nil {
		t.Fatal(err)
	}
	var fromYAML []diagfmt.NodeOutput
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml decode: %v\n%s", err, ybuf.String())
	}
	if len(fromYAML) == 0 || fromYAML[0].Name != "soc" || fromYAML[0].Value == nil || *fromYAML[0].Value != "Refrain" {
		t.Fatalf("nodes = %+v", fromYAML)
	}
	if len(fromYAML[0].Children) == 0 {
		t.Fatal("chorus lost its children")
	}

	var jbuf bytes.Buffer
	if err := diagfmt.FormatNodesJSON(&jbuf, nodes); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(jbuf.String(), `"kind": "comment"`) {
		t.Fatalf("json:\n%s", jbuf.String())
	}
}
