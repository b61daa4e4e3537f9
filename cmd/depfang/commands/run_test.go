package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDemoProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "app")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	files := map[string]string{
		filepath.Join(pkgDir, "__init__.py"): "",
		filepath.Join(pkgDir, "main.py"):     "import os\nfrom . import helpers\n",
		filepath.Join(pkgDir, "helpers.py"):  "import json\n",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func TestRunCommand_JSONOutputter_EmitsGraphDocument(t *testing.T) {
	t.Parallel()

	project := writeDemoProject(t)

	var stdout bytes.Buffer

	command := NewRunCommand()
	command.SetOut(&stdout)
	command.SetErr(&stdout)
	command.SetArgs([]string{"-p", project, "-o", "json", "-q"})

	require.NoError(t, command.Execute())

	var doc struct {
		Project   string `json:"project"`
		FileCount int    `json:"file_count"`
		Nodes     []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))

	assert.Equal(t, project, doc.Project)
	assert.Equal(t, 3, doc.FileCount)

	names := make([]string, 0, len(doc.Nodes))
	for _, node := range doc.Nodes {
		names = append(names, node.Name)
	}

	assert.Contains(t, names, "app.main")
	assert.Contains(t, names, "app.helpers")
	assert.Contains(t, names, "os")
}

func TestRunCommand_OutputFlag_WritesFile(t *testing.T) {
	t.Parallel()

	project := writeDemoProject(t)
	outPath := filepath.Join(t.TempDir(), "graph.json")

	command := NewRunCommand()
	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{"-p", project, "-o", "json", "-q", "--output", outPath})

	require.NoError(t, command.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestRunCommand_NoProject_ReturnsError(t *testing.T) {
	t.Parallel()

	command := NewRunCommand()
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"-q"})

	err := command.Execute()
	require.ErrorIs(t, err, ErrNoProject)
}

func TestRunCommand_UnknownOutputter_ReturnsError(t *testing.T) {
	t.Parallel()

	project := writeDemoProject(t)

	command := NewRunCommand()
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"-p", project, "-o", "nope", "-q"})

	err := command.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRunCommand_CacheFlag_PopulatesCacheDir(t *testing.T) {
	t.Parallel()

	project := writeDemoProject(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")

	command := NewRunCommand()
	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{"-p", project, "-o", "json", "-q", "--cache", "--cache-dir", cacheDir})

	require.NoError(t, command.Execute())

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestMergeParams_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	params, err := mergeParams(
		map[string]string{"rankdir": "TB", "title": "base"},
		[]string{"title=override", "compact=true"},
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"rankdir": "TB",
		"title":   "override",
		"compact": "true",
	}, params)
}

func TestMergeParams_Malformed_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := mergeParams(nil, []string{"no-equals-sign"})
	require.Error(t, err)

	_, err = mergeParams(nil, []string{"=value"})
	require.Error(t, err)
}
