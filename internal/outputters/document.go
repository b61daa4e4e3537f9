package outputters

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

// document is the serializable shape shared by the json and yaml
// outputters.
type document struct {
	Project   string            `json:"project" yaml:"project"`
	Nodes     []depgraph.Node   `json:"nodes" yaml:"nodes"`
	Edges     []depgraph.Edge   `json:"edges" yaml:"edges"`
	Failures  []documentFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	FileCount int               `json:"file_count" yaml:"file_count"`
}

type documentFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

func newDocument(result *scan.Result) document {
	doc := document{
		Project:   result.Project,
		Nodes:     result.Graph.Nodes,
		Edges:     result.Graph.Edges,
		FileCount: len(result.Files),
	}

	for _, failure := range result.Failures {
		doc.Failures = append(doc.Failures, documentFailure{
			Path:  failure.Path,
			Error: failure.Err.Error(),
		})
	}

	return doc
}

// JSONOutputter renders the scan result as an indented JSON document.
//
// Parameters: "compact" drops the indentation.
type JSONOutputter struct{}

// Name implements Outputter.
func (o *JSONOutputter) Name() string { return "json" }

// Write implements Outputter.
func (o *JSONOutputter) Write(w io.Writer, result *scan.Result, params map[string]string) error {
	enc := json.NewEncoder(w)
	if !paramBool(params, "compact", false) {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(newDocument(result)); err != nil {
		return fmt.Errorf("encode json document: %w", err)
	}

	return nil
}

// YAMLOutputter renders the scan result as a YAML document.
type YAMLOutputter struct{}

// Name implements Outputter.
func (o *YAMLOutputter) Name() string { return "yaml" }

// Write implements Outputter.
func (o *YAMLOutputter) Write(w io.Writer, result *scan.Result, _ map[string]string) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(newDocument(result)); err != nil {
		return fmt.Errorf("encode yaml document: %w", err)
	}

	return nil
}
