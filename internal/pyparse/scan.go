package pyparse

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// Import patterns for the fallback scanner. Line-oriented, the same
// approach the regex import scanners in this codebase's lineage use.
var (
	fromImportPattern  = regexp.MustCompile(`^\s*from\s+([.\w]+)\s+import\s+(.+)$`)
	plainImportPattern = regexp.MustCompile(`^\s*import\s+([\w. ,]+)$`)
)

// ScanImports extracts import statements from source using regex line
// scanning. Parenthesized fromlists spanning multiple lines are joined
// into one logical line before matching. Statements nested in
// conditionals or functions are picked up like any other line, which
// matches how a traced run would observe them.
func ScanImports(source []byte) []Statement {
	var statements []Statement

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripComment(scanner.Text())
		startLine := lineNum

		// Join a parenthesized fromlist into one logical line.
		if strings.Contains(line, "(") && !strings.Contains(line, ")") {
			var joined strings.Builder
			joined.WriteString(line)
			for scanner.Scan() {
				lineNum++
				joined.WriteString(" ")
				joined.WriteString(stripComment(scanner.Text()))
				if strings.Contains(scanner.Text(), ")") {
					break
				}
			}
			line = joined.String()
		}

		statements = append(statements, parseLine(line, startLine)...)
	}

	return statements
}

func parseLine(line string, lineNum int) []Statement {
	if m := fromImportPattern.FindStringSubmatch(line); m != nil {
		level := 0
		module := m[1]
		for strings.HasPrefix(module, ".") {
			level++
			module = module[1:]
		}

		names := splitNames(m[2])
		if names == nil {
			names = []string{}
		}

		return []Statement{{
			Module: module,
			Names:  names,
			Level:  level,
			Line:   lineNum,
		}}
	}

	if m := plainImportPattern.FindStringSubmatch(line); m != nil {
		// "import a, b" fires one load per listed module.
		var statements []Statement
		for _, name := range splitNames(m[1]) {
			statements = append(statements, Statement{
				Module: name,
				Names:  nil,
				Level:  0,
				Line:   lineNum,
			})
		}
		return statements
	}

	return nil
}

// splitNames splits a fromlist or module list, dropping parentheses,
// aliases, and empty entries.
func splitNames(list string) []string {
	list = strings.NewReplacer("(", "", ")", "").Replace(list)

	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, " as "); idx >= 0 {
			part = strings.TrimSpace(part[:idx])
		}
		if part != "" {
			names = append(names, part)
		}
	}

	return names
}

func stripComment(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}
