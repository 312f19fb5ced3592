package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap for corpus entries
)

// builtinSeeds cover every scanner mode and the known error paths.
var builtinSeeds = []string{
	"",
	"\n",
	"[C]Twinkle [G]twinkle\n",
	"{title: Song}\n{st: Sub}\n",
	"{t}\n{c:  spaced  }\n",
	"{soc}\n[G]la la\n{eoc}\n",
	"{start_of_chorus: Refrain}\nla\n{end_of_chorus}\n",
	"{sov}\nverse\n{end_of_verse}\n",
	"{sot}\nE|---0---|\n{eot}\n",
	"{sog}\n| C . . . | G . . . |\n{eog}\n",
	"{define: G base-fret 1 frets 3 2 0 0 0 3 fingers 2 1 0 0 0 3}\n",
	"{chord: Am}\n",
	"# comment\n  # indented comment\n",
	"{t: a}{st: b} trailing\n",
	"[C\n",
	"[]empty\n",
	"bad\x01\n",
	"\xff\xfe\n",
	"{define:}\n",
	"日本[G]語\n",
	"| [C] | [G] |\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cho" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
