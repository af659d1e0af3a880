//go:build !cgo

package pyparse

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when tree-sitter parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("tree-sitter parsing requires CGO")

// Parser extracts import statements using the tree-sitter Python grammar.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new tree-sitter backed parser.
// Returns nil when CGO is disabled.
func NewParser() *Parser {
	return nil
}

// IsAvailable returns whether tree-sitter parsing is available.
// Returns false when CGO is disabled; extraction falls back to the regex scanner.
func IsAvailable() bool {
	return false
}

// Extract is a stub that always returns ErrNoCGO.
func (p *Parser) Extract(ctx context.Context, source []byte) ([]Statement, error) {
	return nil, ErrNoCGO
}
