package outputters

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/depfang/internal/depgraph"
	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

const (
	localCategory    = 0
	externalCategory = 1

	localSymbolSize    = 20
	externalSymbolSize = 12

	graphRepulsion = 80
)

// HTMLOutputter renders the dependency graph as an interactive force layout
// page.
//
// Parameters: "title" overrides the page title.
type HTMLOutputter struct{}

// Name implements Outputter.
func (o *HTMLOutputter) Name() string { return "html" }

// Write implements Outputter.
func (o *HTMLOutputter) Write(w io.Writer, result *scan.Result, params map[string]string) error {
	title := params["title"]
	if title == "" {
		title = fmt.Sprintf("Dependencies of %s", result.Project)
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	nodes := make([]opts.GraphNode, 0, len(result.Graph.Nodes))

	for _, node := range result.Graph.Nodes {
		category := externalCategory
		symbolSize := externalSymbolSize

		if node.Kind == depgraph.KindLocal {
			category = localCategory
			symbolSize = localSymbolSize
		}

		nodes = append(nodes, opts.GraphNode{
			Name:       node.Name,
			Category:   category,
			SymbolSize: symbolSize,
		})
	}

	links := make([]opts.GraphLink, 0, len(result.Graph.Edges))
	for _, edge := range result.Graph.Edges {
		links = append(links, opts.GraphLink{Source: edge.From, Target: edge.To})
	}

	graph.AddSeries("dependencies", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:             "force",
			Force:              &opts.GraphForce{Repulsion: graphRepulsion},
			Roam:               opts.Bool(true),
			FocusNodeAdjacency: opts.Bool(true),
			Categories: []*opts.GraphCategory{
				{Name: string(depgraph.KindLocal)},
				{Name: string(depgraph.KindExternal)},
			},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)

	if err := graph.Render(w); err != nil {
		return fmt.Errorf("render html graph: %w", err)
	}

	return nil
}
