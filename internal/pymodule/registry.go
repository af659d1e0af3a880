// Package pymodule models Python modules as pygraph sees them: a dotted
// name, a backing source file, and a per-run registry that plays the
// role of the interpreter's live module table.
package pymodule

// Unknown is the sentinel name reported when an import's requester
// cannot be determined.
const Unknown = "<unknown>"

// Module represents a single loaded Python module.
type Module struct {
	// Name is the canonical dotted path, e.g. "pkg.sub.mod"
	Name string

	// File is the backing source file. Empty for modules whose
	// location is not known (built-ins, synthesized entries).
	File string
}

// Registry tracks every module loaded during one run, keyed by dotted
// name. It is the analogue of the interpreter's module table: fromlist
// resolution walks it to find the longest prefix that names a real
// module. A run is single-threaded, so the registry is unsynchronized.
type Registry struct {
	modules map[string]*Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]*Module{}}
}

// Register records a module. Registering the same name twice keeps the
// first entry; a run registers each module exactly once.
func (r *Registry) Register(m *Module) *Module {
	if existing, ok := r.modules[m.Name]; ok {
		return existing
	}
	r.modules[m.Name] = m
	return m
}

// Lookup returns the module registered under name, if any.
func (r *Registry) Lookup(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// FilePath returns the backing file of the named module, or the empty
// string when the module is unregistered or has no known file. This is
// the lookup the edge filename filter runs against.
func (r *Registry) FilePath(name string) string {
	m, ok := r.modules[name]
	if !ok {
		return ""
	}
	return m.File
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}
