package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"chordpro/internal/song"
)

// NodeOutput is the serializable form of a song node.
type NodeOutput struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Value    *string      `json:"value,omitempty" yaml:"value,omitempty"`
	Chords   []string     `json:"chords,omitempty" yaml:"chords,omitempty,flow"`
	Runs     []string     `json:"runs,omitempty" yaml:"runs,omitempty,flow"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty"`
	Token    string       `json:"token,omitempty" yaml:"token,omitempty"`
	Children []NodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildNodeOutput converts nodes into their serializable form.
func BuildNodeOutput(nodes []song.Node) []NodeOutput {
	out := make([]NodeOutput, 0, len(nodes))
	for _, n := range nodes {
		o := NodeOutput{Kind: n.Kind().String()}
		switch v := n.(type) {
		case *song.Directive:
			o.Name = v.Name
			if v.HasValue {
				val := v.Value
				o.Value = &val
			}
			if len(v.Children) > 0 {
				o.Children = BuildNodeOutput(v.Children)
			}
		case song.ChordLine:
			o.Chords = v.Chords
		case song.LyricLine:
			o.Runs = v.Runs
		case song.Comment:
			o.Text = v.Text
		case song.Verbatim:
			o.Token = v.Token.String()
			o.Text = v.Text
		}
		out = append(out, o)
	}
	return out
}

// FormatNodesPretty prints the node tree indented by depth.
func FormatNodesPretty(w io.Writer, nodes []song.Node) error {
	var err error
	song.Walk(nodes, func(n song.Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(n))
		return true
	})
	return err
}

func describe(n song.Node) string {
	switch v := n.(type) {
	case *song.Directive:
		if v.HasValue {
			return fmt.Sprintf("directive %s: %q", v.Name, v.Value)
		}
		return "directive " + v.Name
	case song.ChordLine:
		return fmt.Sprintf("chordline %q", v.Chords)
	case song.LyricLine:
		return fmt.Sprintf("lyricline %q", v.Runs)
	case song.Comment:
		return fmt.Sprintf("comment %q", v.Text)
	case song.Verbatim:
		return fmt.Sprintf("%s %q", v.Token, v.Text)
	}
	return n.Kind().String()
}

// FormatNodesJSON writes the node tree as indented JSON.
func FormatNodesJSON(w io.Writer, nodes []song.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildNodeOutput(nodes))
}

// FormatNodesYAML writes the node tree as YAML.
func FormatNodesYAML(w io.Writer, nodes []song.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildNodeOutput(nodes)); err != nil {
		return err
	}
	return enc.Close()
}
