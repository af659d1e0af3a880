// Package graph accumulates resolved import edges and renders the
// result as a directed-graph description.
package graph

import (
	"regexp"
	"sort"

	pgerrors "pygraph/internal/errors"
)

// FileResolver reports the backing source file of a module as currently
// known, or the empty string for built-ins and unknowns. The module
// registry satisfies it.
type FileResolver interface {
	FilePath(module string) string
}

// Sink is what the load driver hands edges to: accept a resolved edge,
// serialize to text, persist to a named destination. ImportGraph is the
// single concrete implementation.
type Sink interface {
	Record(from, to string)
	Render(format Format) (string, error)
	Save(path string, format Format) error
}

// Edge is one directed import relationship between dotted module paths.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// ImportGraph owns the node and edge sets for one run. Edges are a
// mathematical set: repeated imports of the same module by the same
// requester produce one edge. The graph only grows; there is no
// removal operation.
type ImportGraph struct {
	files         FileResolver
	filenameRegex *regexp.Regexp
	nodes         map[string]bool
	edges         map[Edge]bool
}

// New creates an empty graph. When filenameRegex is non-empty, an edge
// is retained only if both endpoints' backing file paths fully match
// the pattern; the filter is evaluated once, at insertion time.
func New(files FileResolver, filenameRegex string) (*ImportGraph, error) {
	g := &ImportGraph{
		files: files,
		nodes: map[string]bool{},
		edges: map[Edge]bool{},
	}

	if filenameRegex != "" {
		// Anchor for full-match semantics.
		re, err := regexp.Compile(`\A(?:` + filenameRegex + `)\z`)
		if err != nil {
			return nil, pgerrors.New(pgerrors.RegexInvalid, "invalid filename filter", err)
		}
		g.filenameRegex = re
	}

	return g, nil
}

// Record applies the filename filter and, if the edge is kept, adds
// both endpoints as nodes and the edge itself. Recording an existing
// edge is a no-op. A filtered-out edge contributes nothing, not even
// orphan nodes.
func (g *ImportGraph) Record(from, to string) {
	if !g.shouldKeep(from, to) {
		return
	}

	g.nodes[from] = true
	g.nodes[to] = true
	g.edges[Edge{From: from, To: to}] = true
}

func (g *ImportGraph) shouldKeep(from, to string) bool {
	if g.filenameRegex == nil {
		return true
	}
	return g.filenameRegex.MatchString(g.filePath(from)) &&
		g.filenameRegex.MatchString(g.filePath(to))
}

func (g *ImportGraph) filePath(module string) string {
	if g.files == nil {
		return ""
	}
	return g.files.FilePath(module)
}

// Nodes returns the node set in sorted order.
func (g *ImportGraph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// Edges returns the edge set sorted by source then target.
func (g *ImportGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for edge := range g.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// HasEdge reports whether the edge is present.
func (g *ImportGraph) HasEdge(from, to string) bool {
	return g.edges[Edge{From: from, To: to}]
}

// Len returns the number of edges.
func (g *ImportGraph) Len() int {
	return len(g.edges)
}
