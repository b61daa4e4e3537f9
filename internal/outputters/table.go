package outputters

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

// humanizeDurationUnit is the rounding unit for the summary duration.
const humanizeDurationUnit = time.Millisecond

// TableOutputter renders the dependency graph as a terminal table, one row
// per edge, followed by a summary line.
//
// Parameters: "no_color" disables the colored header and summary.
type TableOutputter struct{}

// Name implements Outputter.
func (o *TableOutputter) Name() string { return "table" }

// Write implements Outputter.
func (o *TableOutputter) Write(w io.Writer, result *scan.Result, params map[string]string) error {
	noColor := paramBool(params, "no_color", false)

	header := color.New(color.FgCyan, color.Bold)
	if noColor {
		header.DisableColor()
	}

	if _, err := header.Fprintf(w, "Dependencies of %s\n", result.Project); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	kinds := make(map[string]depgraph.NodeKind, len(result.Graph.Nodes))
	for _, node := range result.Graph.Nodes {
		kinds[node.Name] = node.Kind
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Module", "Imports", "Kind"})

	for _, edge := range result.Graph.Edges {
		t.AppendRow(table.Row{edge.From, edge.To, kinds[edge.To]})
	}

	t.Render()

	summary := fmt.Sprintf(
		"%s modules, %s dependencies, %s files scanned in %s",
		humanize.Comma(int64(len(result.Graph.Nodes))),
		humanize.Comma(int64(len(result.Graph.Edges))),
		humanize.Comma(int64(len(result.Files))),
		result.Duration.Round(humanizeDurationUnit),
	)

	if _, err := fmt.Fprintln(w, summary); err != nil {
		return fmt.Errorf("write table summary: %w", err)
	}

	return writeFailures(w, result, noColor)
}

func writeFailures(w io.Writer, result *scan.Result, noColor bool) error {
	if len(result.Failures) == 0 {
		return nil
	}

	warn := color.New(color.FgYellow)
	if noColor {
		warn.DisableColor()
	}

	for _, failure := range result.Failures {
		if _, err := warn.Fprintf(w, "skipped %s: %v\n", failure.Path, failure.Err); err != nil {
			return fmt.Errorf("write failure line: %w", err)
		}
	}

	return nil
}
