// Package scan orchestrates a full project scan: file discovery,
// tokenising and parsing, cache lookups, and graph construction.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Sumatoshi-tech/depfang/internal/cache"
	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/discover"
	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
	"github.com/Sumatoshi-tech/depfang/pkg/importmodel"
)

// Options configures a scan.
type Options struct {
	// Depth limits graph traversal from the root modules; negative means
	// unlimited.
	Depth int
	// MaxFileSize skips larger files during discovery; zero means no limit.
	MaxFileSize int64
	// ExcludeDirs are directory names pruned from discovery.
	ExcludeDirs []string
	// Cache, when non-nil, is consulted before parsing and filled after.
	Cache *cache.Store
}

// Result is the outcome of a project scan, consumed by the outputters.
type Result struct {
	Project  string
	Files    []importmodel.File
	Failures []importmodel.Failure
	Graph    *depgraph.Graph
	Duration time.Duration
}

// Run scans the project directory and builds its dependency graph. Files
// whose parse fails with a grammar error are collected as failures and
// excluded from the graph; the scan continues with the remaining files.
func Run(project string, opts Options) (*Result, error) {
	start := time.Now()

	sources, err := discover.Walk(project, discover.Options{
		MaxFileSize: opts.MaxFileSize,
		ExcludeDirs: opts.ExcludeDirs,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Project: project}
	builder := depgraph.NewBuilder()

	for _, src := range sources {
		file, fileErr := scanFile(src, opts.Cache)
		if fileErr != nil {
			slog.Warn("skipping file", "path", src.RelPath, "error", fileErr)
			result.Failures = append(result.Failures, importmodel.Failure{
				Path: src.RelPath,
				Err:  fileErr,
			})

			continue
		}

		result.Files = append(result.Files, file)
		builder.AddImports(file.Module, file.IsPackage, file.Imports)
	}

	result.Graph = builder.Build().Limit(opts.Depth)
	result.Duration = time.Since(start)

	return result, nil
}

func scanFile(src discover.Source, store *cache.Store) (importmodel.File, error) {
	module, isPackage := depgraph.ModuleName(src.RelPath)

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return importmodel.File{}, fmt.Errorf("read file: %w", err)
	}

	records, err := parseContent(content, store)
	if err != nil {
		return importmodel.File{}, err
	}

	return importmodel.File{
		Path:      src.RelPath,
		Module:    module,
		IsPackage: isPackage,
		Lang:      src.Lang,
		Imports:   records,
	}, nil
}

func parseContent(content []byte, store *cache.Store) ([]pysrc.ImportRecord, error) {
	var key string

	if store != nil {
		key = cache.Key(content)
		if records, hit := store.Get(key); hit {
			return records, nil
		}
	}

	tokens, err := pysrc.Tokenise(string(content))
	if err != nil {
		return nil, err
	}

	records, err := pysrc.Parse(tokens)
	if err != nil {
		return nil, err
	}

	if store != nil {
		store.Put(key, records)
	}

	return records, nil
}
