package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depfang/internal/cache"
	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func demoProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, root, "app/__init__.py", "")
	writeFile(t, root, "app/main.py", "import os\nfrom . import helpers\n")
	writeFile(t, root, "app/helpers.py", "import json\n")

	return root
}

func TestRun_DemoProject_BuildsGraph(t *testing.T) {
	t.Parallel()

	result, err := scan.Run(demoProject(t), scan.Options{Depth: -1})
	require.NoError(t, err)

	assert.Len(t, result.Files, 3)
	assert.Empty(t, result.Failures)

	var names []string
	for _, n := range result.Graph.Nodes {
		names = append(names, n.Name)
	}

	assert.Equal(t, []string{"app", "app.helpers", "app.main", "json", "os"}, names)
	assert.Contains(t, result.Graph.Edges, depgraph.Edge{From: "app.main", To: "app.helpers"})
	assert.Contains(t, result.Graph.Edges, depgraph.Edge{From: "app.main", To: "os"})
	assert.Contains(t, result.Graph.Edges, depgraph.Edge{From: "app.helpers", To: "json"})
}

func TestRun_MalformedFile_IsRecordedAsFailureAndSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "good.py", "import os\n")
	writeFile(t, root, "bad.py", "import broken..name\n")

	result, err := scan.Run(root, scan.Options{Depth: -1})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "bad.py", result.Failures[0].Path)
	assert.Len(t, result.Files, 1)
	assert.Equal(t, "good", result.Files[0].Module)
}

func TestRun_DepthLimit_PrunesGraph(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "root.py", "import mid\n")
	writeFile(t, root, "mid.py", "import leaf\n")
	writeFile(t, root, "leaf.py", "import json\n")

	result, err := scan.Run(root, scan.Options{Depth: 1})
	require.NoError(t, err)

	var names []string
	for _, n := range result.Graph.Nodes {
		names = append(names, n.Name)
	}

	assert.Equal(t, []string{"mid", "root"}, names)
}

func TestRun_WithCache_SecondScanHitsCache(t *testing.T) {
	t.Parallel()

	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)

	project := demoProject(t)
	opts := scan.Options{Depth: -1, Cache: store}

	first, err := scan.Run(project, opts)
	require.NoError(t, err)

	second, err := scan.Run(project, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Graph, second.Graph)
	assert.Equal(t, first.Files, second.Files)
}

func TestRun_MissingProject_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := scan.Run(filepath.Join(t.TempDir(), "nope"), scan.Options{})
	require.Error(t, err)
}
