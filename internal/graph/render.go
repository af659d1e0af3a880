package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	pgerrors "pygraph/internal/errors"
)

// Format is a graph render format.
type Format string

const (
	// FormatDOT renders Graphviz DOT, the default.
	FormatDOT Format = "dot"
	// FormatJSON renders a deterministic JSON document.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatDOT, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", pgerrors.New(pgerrors.FormatInvalid,
			fmt.Sprintf("unsupported format %q (want dot, json, or yaml)", name), nil)
	}
}

// document is the serialized graph shape for the json and yaml formats.
// Nodes and edges are emitted sorted so output is stable across runs.
type document struct {
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
}

// Render serializes the current graph state. This is write-only output;
// nothing parses it back.
func (g *ImportGraph) Render(format Format) (string, error) {
	switch format {
	case FormatDOT, "":
		return g.renderDOT(), nil
	case FormatJSON:
		return g.renderJSON()
	case FormatYAML:
		return g.renderYAML()
	default:
		return "", pgerrors.New(pgerrors.FormatInvalid,
			fmt.Sprintf("unsupported format %q", format), nil)
	}
}

// renderDOT emits the graph as a Graphviz digraph with rectangle nodes.
func (g *ImportGraph) renderDOT() string {
	var b strings.Builder
	b.WriteString("digraph imports {\n")

	for _, node := range g.Nodes() {
		fmt.Fprintf(&b, "\t%s [shape=rectangle]\n", quoteDOT(node))
	}
	for _, edge := range g.Edges() {
		fmt.Fprintf(&b, "\t%s -> %s\n", quoteDOT(edge.From), quoteDOT(edge.To))
	}

	b.WriteString("}\n")
	return b.String()
}

func (g *ImportGraph) renderJSON() (string, error) {
	data, err := json.MarshalIndent(g.document(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func (g *ImportGraph) renderYAML() (string, error) {
	data, err := yaml.Marshal(g.document())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *ImportGraph) document() document {
	doc := document{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
	if doc.Nodes == nil {
		doc.Nodes = []string{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return doc
}

// quoteDOT quotes a node identifier for DOT output. Module paths are
// dotted identifiers plus the "<unknown>" sentinel, so quoting plus
// escaping embedded quotes and backslashes covers the alphabet.
func quoteDOT(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
	return `"` + escaped + `"`
}
