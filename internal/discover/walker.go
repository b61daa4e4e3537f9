// Package discover finds the Python source files of a project directory.
package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

const pythonExt = ".py"

const pythonLang = "Python"

// Options controls the walk.
type Options struct {
	// MaxFileSize skips files larger than this many bytes; zero means no
	// limit.
	MaxFileSize int64
	// ExcludeDirs are directory names pruned from the walk, in addition to
	// hidden and vendored directories.
	ExcludeDirs []string
}

// Source is a discovered Python file.
type Source struct {
	// Path is the absolute (or root-joined) file path.
	Path string
	// RelPath is the path relative to the project root.
	RelPath string
	// Lang is the detected language name.
	Lang string
}

// Walk returns every Python source file under root in deterministic
// lexical order. Candidates are selected by extension and confirmed with
// enry's language detection so misnamed files do not reach the parser.
func Walk(root string, opts Options) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat project directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("project path %q is not a directory", root)
	}

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	var sources []Source

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}

			if skipDir(d.Name(), excluded) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != pythonExt {
			return nil
		}

		if enry.IsVendor(filepath.ToSlash(rel)) {
			return nil
		}

		if opts.MaxFileSize > 0 {
			fileInfo, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}

			if fileInfo.Size() > opts.MaxFileSize {
				slog.Debug("skipping oversized file", "path", rel, "size", fileInfo.Size())

				return nil
			}
		}

		lang := detectLanguage(path)
		if lang != pythonLang {
			slog.Debug("skipping non-Python file", "path", rel, "lang", lang)

			return nil
		}

		sources = append(sources, Source{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Lang:    lang,
		})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk project directory: %w", walkErr)
	}

	return sources, nil
}

func skipDir(name string, excluded map[string]bool) bool {
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}

	if name == "__pycache__" {
		return true
	}

	return excluded[name]
}

// detectLanguage samples the file head and asks enry. An unreadable file is
// classified by its name alone.
func detectLanguage(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		content = nil
	}

	return enry.GetLanguage(filepath.Base(path), content)
}
