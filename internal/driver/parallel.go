package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"chordpro/internal/diag"
	"chordpro/internal/observ"
	"chordpro/internal/source"
	"chordpro/internal/trace"
)

// DirOptions control ParseDir.
type DirOptions struct {
	Options
	// Jobs limits concurrent files; GOMAXPROCS when <= 0.
	Jobs int
	// IsSong selects files; every regular file when nil.
	IsSong func(path string) bool
}

// ParseDirResult is the outcome for one file of a directory.
type ParseDirResult struct {
	Path string
	// Result is nil when the file could not be loaded.
	Result *ParseResult
	Bag    *diag.Bag
}

// ListSongs returns the sorted song files under dir. Hidden directories
// are skipped.
func ListSongs(dir string, isSong func(string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isSong == nil || isSong(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every song under dir in parallel. Files are loaded up
// front into one FileSet; results keep the sorted file order.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSongs(dir, opts.IsSong)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse-dir")
	defer span.End(dir)

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		var fileID source.FileID
		loadErr := phase(ctx, PhaseLoad, path, nil, opts.OnPhase, func(context.Context) error {
			var err error
			fileID, err = fileSet.Load(path)
			return err
		})
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = ParseDirResult{Path: path, Bag: bag}
				return nil
			}

			fctx, fspan := trace.Start(gctx, trace.ScopeFile, "song")
			defer fspan.End(path)

			var timer *observ.Timer
			if opts.Timings {
				timer = observ.NewTimer()
			}
			res := &ParseResult{TokenizeResult: &TokenizeResult{
				FileSet: fileSet,
				File:    fileSet.Get(fileIDs[path]),
				Bag:     bag,
			}}
			res.scan(fctx, timer, opts.Options)
			res.assemble(fctx, timer, opts.OnPhase)
			if timer != nil {
				appendTimingDiagnostic(bag, "parse", path, timer.Report())
			}
			results[i] = ParseDirResult{Path: path, Result: res, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of every result into one bag.
func MergeBags(results []ParseDirResult, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	return bag
}
