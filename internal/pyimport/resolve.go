package pyimport

import (
	"sort"
	"strings"

	"pygraph/internal/pymodule"
)

// TargetModules resolves the event to the set of dotted module paths it
// imported, consulting the registry of currently loaded modules.
//
// Plain imports resolve to the requested name verbatim. From-imports
// resolve each fromlist entry to the longest candidate-path prefix that
// names a loaded module; entries with no loaded prefix are silently
// dropped rather than reported, preserving best-effort output for
// modules that are mid-initialization when the import fires. Results
// are deduplicated and sorted.
func (e Event) TargetModules(reg *pymodule.Registry) []string {
	if e.FromList == nil {
		return []string{e.Name}
	}

	base := e.BasePath()

	resolved := map[string]bool{}
	for _, entry := range e.FromList {
		candidate := append(append([]string{}, base...), entry)
		if name := longestLoadedPrefix(candidate, reg); name != "" {
			resolved[name] = true
		}
	}

	targets := make([]string, 0, len(resolved))
	for name := range resolved {
		targets = append(targets, name)
	}
	sort.Strings(targets)

	return targets
}

// longestLoadedPrefix walks path from its full length down to one
// segment and returns the longest prefix registered as a module, or ""
// when no prefix is loaded. A fromlist entry may name an attribute of a
// module rather than a module; walking prefixes finds the containing
// module in that case.
func longestLoadedPrefix(path []string, reg *pymodule.Registry) string {
	for i := len(path); i >= 1; i-- {
		name := strings.Join(path[:i], ".")
		if reg.Has(name) {
			return name
		}
	}
	return ""
}
