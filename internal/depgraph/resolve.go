package depgraph

import (
	"path"
	"strings"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

const initModule = "__init__"

// ModuleName converts a Python file path, relative to the project root,
// into its dotted module name. "pkg/mod.py" becomes "pkg.mod" and
// "pkg/__init__.py" becomes the package itself, "pkg". The second return
// reports whether the file is a package initializer. An empty name is
// returned for paths that do not map to a module (a top-level __init__.py).
func ModuleName(relPath string) (string, bool) {
	clean := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	clean = strings.TrimSuffix(clean, ".py")

	parts := strings.Split(clean, "/")

	isPackage := parts[len(parts)-1] == initModule
	if isPackage {
		parts = parts[:len(parts)-1]
	}

	return strings.Join(parts, "."), isPackage
}

// resolveTarget maps an import record to the dotted name of the module it
// refers to. Relative imports resolve against the importing module's
// package: the module itself for a package initializer, its parent package
// otherwise. A record with no nameable target resolves to "".
func resolveTarget(module string, isPackage bool, rec pysrc.ImportRecord) string {
	if rec.Module == "*" {
		return ""
	}

	if !rec.Relative {
		return rec.Module
	}

	base := module
	if !isPackage {
		base = parentPackage(module)
	}

	switch {
	case rec.Module == "":
		return base
	case base == "":
		return rec.Module
	default:
		return base + "." + rec.Module
	}
}

// parentPackage strips the last dotted segment; top-level modules have no
// parent package.
func parentPackage(module string) string {
	idx := strings.LastIndex(module, ".")
	if idx < 0 {
		return ""
	}

	return module[:idx]
}
