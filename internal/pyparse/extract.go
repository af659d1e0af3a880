package pyparse

import (
	"context"
)

// ExtractImports returns the import statements in source, using the
// tree-sitter engine when the build has it and the regex scanner
// otherwise. Both engines yield the same Statement shape.
func ExtractImports(ctx context.Context, source []byte) ([]Statement, error) {
	if IsAvailable() {
		parser := NewParser()
		statements, err := parser.Extract(ctx, source)
		if err == nil {
			return statements, nil
		}
		// A source file the grammar rejects still has scannable
		// import lines; fall through rather than abort.
	}

	return ScanImports(source), nil
}
