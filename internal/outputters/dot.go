package outputters

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

// DotOutputter renders the dependency graph as a Graphviz digraph.
//
// Parameters: "rankdir" sets the layout direction (default "LR").
type DotOutputter struct{}

// Name implements Outputter.
func (o *DotOutputter) Name() string { return "dot" }

// Write implements Outputter.
func (o *DotOutputter) Write(w io.Writer, result *scan.Result, params map[string]string) error {
	rankdir := params["rankdir"]
	if rankdir == "" {
		rankdir = "LR"
	}

	var b strings.Builder

	b.WriteString("digraph dependencies {\n")
	fmt.Fprintf(&b, "\trankdir=%s;\n", quoteDotID(rankdir))

	for _, node := range result.Graph.Nodes {
		shape := "ellipse"
		if node.Kind == depgraph.KindLocal {
			shape = "box"
		}

		fmt.Fprintf(&b, "\t%s [shape=%s];\n", quoteDotID(node.Name), shape)
	}

	for _, edge := range result.Graph.Edges {
		fmt.Fprintf(&b, "\t%s -> %s;\n", quoteDotID(edge.From), quoteDotID(edge.To))
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write dot graph: %w", err)
	}

	return nil
}

// quoteDotID quotes an identifier for the dot language; dotted module names
// always need quoting.
func quoteDotID(id string) string {
	escaped := strings.ReplaceAll(id, `"`, `\"`)

	return `"` + escaped + `"`
}
