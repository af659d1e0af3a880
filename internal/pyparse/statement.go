// Package pyparse extracts import statements from Python source.
//
// Two engines produce the same Statement stream: a tree-sitter parser
// (CGO builds) and a line-oriented regex scanner used as the fallback.
package pyparse

// Statement is one Python import statement, normalized to the shape the
// interpreter's import call receives.
type Statement struct {
	// Module is the requested dotted module path. Empty for pure
	// relative imports such as "from . import x".
	Module string

	// Names holds the fromlist for "from X import a, b" forms.
	// A nil Names means a plain "import X"; an empty non-nil slice is
	// a degenerate from-import. The nil/non-nil distinction changes
	// resolution strategy and must survive both engines.
	Names []string

	// Level is the number of leading dots in a relative import.
	// Zero means absolute.
	Level int

	// Line is the 1-based source line the statement starts on.
	Line int
}

// IsFromImport reports whether the statement is a "from X import ..." form.
func (s Statement) IsFromImport() bool {
	return s.Names != nil
}
