// Package depgraph builds module dependency graphs from parsed imports.
package depgraph

import (
	"sort"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

// NodeKind distinguishes project-local modules from external dependencies.
type NodeKind string

// Node kinds.
const (
	KindLocal    NodeKind = "local"
	KindExternal NodeKind = "external"
)

// Node is a module in the dependency graph.
type Node struct {
	Name string   `json:"name" yaml:"name"`
	Kind NodeKind `json:"kind" yaml:"kind"`
}

// Edge points from an importing module to an imported module.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph is a deterministic snapshot of module dependencies: nodes sorted by
// name, edges sorted by (from, to), duplicates collapsed.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Builder accumulates per-file import records into a graph.
type Builder struct {
	local map[string]bool
	edges map[string]map[string]bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		local: make(map[string]bool),
		edges: make(map[string]map[string]bool),
	}
}

// AddModule declares a project-local module, even if it imports nothing.
func (b *Builder) AddModule(name string) {
	if name == "" {
		return
	}

	b.local[name] = true

	if b.edges[name] == nil {
		b.edges[name] = make(map[string]bool)
	}
}

// AddImports records the imports of a local module. Relative imports are
// resolved against the module's package before insertion. Records with no
// nameable target (a bare wildcard) are dropped.
func (b *Builder) AddImports(module string, isPackage bool, records []pysrc.ImportRecord) {
	if module == "" {
		return
	}

	b.AddModule(module)

	for _, rec := range records {
		target := resolveTarget(module, isPackage, rec)
		if target == "" {
			continue
		}

		b.edges[module][target] = true
	}
}

// Build returns the accumulated graph.
func (b *Builder) Build() *Graph {
	names := make(map[string]bool)

	for from, targets := range b.edges {
		names[from] = true

		for to := range targets {
			names[to] = true
		}
	}

	for name := range b.local {
		names[name] = true
	}

	graph := &Graph{}

	for name := range names {
		kind := KindExternal
		if b.local[name] {
			kind = KindLocal
		}

		graph.Nodes = append(graph.Nodes, Node{Name: name, Kind: kind})
	}

	sort.Slice(graph.Nodes, func(i, j int) bool {
		return graph.Nodes[i].Name < graph.Nodes[j].Name
	})

	for from, targets := range b.edges {
		for to := range targets {
			graph.Edges = append(graph.Edges, Edge{From: from, To: to})
		}
	}

	sort.Slice(graph.Edges, func(i, j int) bool {
		if graph.Edges[i].From != graph.Edges[j].From {
			return graph.Edges[i].From < graph.Edges[j].From
		}

		return graph.Edges[i].To < graph.Edges[j].To
	})

	return graph
}

// Limit returns the sub-graph reachable from the graph's root modules
// within depth hops. Roots are the local modules no other module imports;
// when every local module is imported (cycles), all local modules are
// roots. A negative depth returns the graph unchanged.
func (g *Graph) Limit(depth int) *Graph {
	if depth < 0 {
		return g
	}

	imported := make(map[string]bool)
	for _, e := range g.Edges {
		imported[e.To] = true
	}

	var roots []string

	for _, n := range g.Nodes {
		if n.Kind == KindLocal && !imported[n.Name] {
			roots = append(roots, n.Name)
		}
	}

	if len(roots) == 0 {
		for _, n := range g.Nodes {
			if n.Kind == KindLocal {
				roots = append(roots, n.Name)
			}
		}
	}

	dist := bfsDistances(g, roots)

	limited := &Graph{}

	for _, n := range g.Nodes {
		d, reached := dist[n.Name]
		if reached && d <= depth {
			limited.Nodes = append(limited.Nodes, n)
		}
	}

	for _, e := range g.Edges {
		d, reached := dist[e.From]
		if reached && d < depth {
			limited.Edges = append(limited.Edges, e)
		}
	}

	return limited
}

func bfsDistances(g *Graph, roots []string) map[string]int {
	adjacency := make(map[string][]string)
	for _, e := range g.Edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	dist := make(map[string]int, len(roots))
	queue := make([]string, 0, len(roots))

	for _, root := range roots {
		dist[root] = 0
		queue = append(queue, root)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range adjacency[current] {
			if _, seen := dist[next]; seen {
				continue
			}

			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}

	return dist
}
