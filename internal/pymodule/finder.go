package pymodule

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	sourceExt   = ".py"
	packageFile = "__init__.py"
)

// Finder maps dotted module names to source files by probing a list of
// search roots, the way the interpreter walks sys.path.
type Finder struct {
	searchPaths []string
	ignoreDirs  map[string]bool
}

// NewFinder creates a finder over the given search roots, consulted in
// order. ignoreDirs lists directory names excluded from directory
// expansion.
func NewFinder(searchPaths []string, ignoreDirs []string) *Finder {
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = true
	}

	return &Finder{
		searchPaths: append([]string{}, searchPaths...),
		ignoreDirs:  ignore,
	}
}

// AddPath appends a search root. Directory mode appends each scanned
// directory before expanding it, matching the reference behavior of
// extending sys.path.
func (f *Finder) AddPath(dir string) {
	f.searchPaths = append(f.searchPaths, dir)
}

// SearchPaths returns the current search roots.
func (f *Finder) SearchPaths() []string {
	return append([]string{}, f.searchPaths...)
}

// Locate resolves a dotted module name to its source file. A package
// directory with __init__.py wins over a same-named plain module,
// matching interpreter precedence. The boolean reports success; a miss
// is not an error at this layer because fromlist probing is allowed to
// miss.
func (f *Finder) Locate(name string) (string, bool) {
	rel := filepath.Join(strings.Split(name, ".")...)

	for _, root := range f.searchPaths {
		pkg := filepath.Join(root, rel, packageFile)
		if isFile(pkg) {
			return pkg, true
		}

		mod := filepath.Join(root, rel+sourceExt)
		if isFile(mod) {
			return mod, true
		}
	}

	return "", false
}

// CollectModules expands a directory into the dotted names of every
// Python module beneath it. Subdirectories lacking an __init__.py
// package marker are skipped entirely; the top-level directory passed
// by the caller is exempt from that check. __init__.py contributes the
// package's own name rather than "pkg.__init__".
func (f *Finder) CollectModules(dir string) ([]string, error) {
	names, err := f.collect(dir, nil)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (f *Finder) collect(dir string, parents []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	if len(parents) > 0 && !hasPackageMarker(entries) {
		return nil, nil
	}

	var names []string
	for _, entry := range entries {
		fullName := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if f.ignoreDirs[entry.Name()] {
				continue
			}
			child := append(append([]string{}, parents...), entry.Name())
			sub, err := f.collect(fullName, child)
			if err != nil {
				return nil, err
			}
			names = append(names, sub...)
			continue
		}

		base, ext := splitExt(entry.Name())
		if ext != sourceExt {
			continue
		}

		if base == "__init__" {
			if len(parents) > 0 {
				names = append(names, strings.Join(parents, "."))
			}
			continue
		}

		names = append(names, strings.Join(append(append([]string{}, parents...), base), "."))
	}

	return names, nil
}

func hasPackageMarker(entries []os.DirEntry) bool {
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == packageFile {
			return true
		}
	}
	return false
}

func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
