//go:build cgo

package pyparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser extracts import statements using the tree-sitter Python grammar.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter backed parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	return &Parser{parser: p}
}

// IsAvailable returns whether tree-sitter parsing is available.
func IsAvailable() bool {
	return true
}

// Extract parses source and returns every import statement in it,
// including statements nested inside functions and conditionals.
func (p *Parser) Extract(ctx context.Context, source []byte) ([]Statement, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	var statements []Statement
	collectImports(tree.RootNode(), source, &statements)

	return statements, nil
}

func collectImports(node *sitter.Node, source []byte, out *[]Statement) {
	switch node.Type() {
	case "import_statement":
		*out = append(*out, plainImports(node, source)...)
		return
	case "import_from_statement":
		*out = append(*out, fromImport(node, source))
		return
	case "future_import_statement":
		*out = append(*out, futureImport(node, source))
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectImports(node.NamedChild(i), source, out)
	}
}

// plainImports handles "import a.b, c as d": one statement per module.
func plainImports(node *sitter.Node, source []byte) []Statement {
	line := int(node.StartPoint().Row) + 1

	var statements []Statement
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		name := importedName(child, source)
		if name == "" {
			continue
		}
		statements = append(statements, Statement{
			Module: name,
			Names:  nil,
			Level:  0,
			Line:   line,
		})
	}

	return statements
}

// fromImport handles "from [dots]X import a, b" and "from X import *".
func fromImport(node *sitter.Node, source []byte) Statement {
	stmt := Statement{
		Names: []string{},
		Line:  int(node.StartPoint().Row) + 1,
	}

	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return stmt
	}
	for {
		child := cursor.CurrentNode()
		switch cursor.CurrentFieldName() {
		case "module_name":
			raw := child.Content(source)
			stmt.Module = strings.TrimLeft(raw, ".")
			stmt.Level = len(raw) - len(stmt.Module)
		case "name":
			if name := importedName(child, source); name != "" {
				stmt.Names = append(stmt.Names, name)
			}
		default:
			if child.Type() == "wildcard_import" {
				stmt.Names = append(stmt.Names, "*")
			}
		}
		if !cursor.GoToNextSibling() {
			break
		}
	}

	return stmt
}

// futureImport handles "from __future__ import x" which the grammar
// gives its own node type.
func futureImport(node *sitter.Node, source []byte) Statement {
	stmt := Statement{
		Module: "__future__",
		Names:  []string{},
		Line:   int(node.StartPoint().Row) + 1,
	}

	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return stmt
	}
	for {
		if cursor.CurrentFieldName() == "name" {
			if name := importedName(cursor.CurrentNode(), source); name != "" {
				stmt.Names = append(stmt.Names, name)
			}
		}
		if !cursor.GoToNextSibling() {
			break
		}
	}

	return stmt
}

// importedName extracts the dotted name from a dotted_name or
// aliased_import node. Aliases are irrelevant to the import graph.
func importedName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "dotted_name":
		return node.Content(source)
	case "aliased_import":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(source)
		}
	}
	return ""
}
