// Package loader drives one tracing run: it loads the requested
// modules through an in-process emulation of the Python import
// machinery and fires a hook for every import statement it encounters.
//
// Interception point: the interpreter's replaceable import entry has no
// Go analogue, so the loader itself owns the registry and the hook. The
// contract is the same — every observed import is first carried out
// (the target modules are loaded into the registry), then reported.
package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	pgerrors "pygraph/internal/errors"
	"pygraph/internal/logging"
	"pygraph/internal/pyimport"
	"pygraph/internal/pymodule"
	"pygraph/internal/pyparse"
)

// Hook observes one import event after its loads have completed.
type Hook func(ev pyimport.Event)

// Loader loads Python modules from disk, registers them, and reports
// their imports. One Loader serves one run; it is not goroutine-safe
// and does not need to be — loading is ordinary call/return nesting.
type Loader struct {
	finder      *pymodule.Finder
	registry    *pymodule.Registry
	logger      *logging.Logger
	hook        Hook
	maxFileSize int64
}

// New creates a loader over the given finder and registry.
func New(finder *pymodule.Finder, registry *pymodule.Registry, logger *logging.Logger, maxFileSize int64) *Loader {
	return &Loader{
		finder:      finder,
		registry:    registry,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// Registry returns the live module registry.
func (l *Loader) Registry() *pymodule.Registry {
	return l.registry
}

// InstallHook installs the import hook for a run and returns a restore
// function that reinstates the previous hook. The hook stays installed
// for the full duration of all top-level loads.
func (l *Loader) InstallHook(h Hook) (restore func()) {
	previous := l.hook
	l.hook = h
	return func() { l.hook = previous }
}

// Load loads the named module: locates its source, registers it, and
// processes its import statements, recursively loading what they name.
// Parent packages load first, as the runtime would. A module that
// cannot be located is a hard failure here — explicit load targets
// must exist.
func (l *Loader) Load(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if l.registry.Has(name) {
		return nil
	}

	if parent := parentPackage(name); parent != "" {
		if err := l.Load(ctx, parent); err != nil {
			return err
		}
	}

	file, ok := l.finder.Locate(name)
	if !ok {
		return pgerrors.New(pgerrors.ModuleNotFound,
			"cannot locate module "+name+" on search paths", nil).
			WithDetails(l.finder.SearchPaths())
	}

	return l.loadFile(ctx, name, file)
}

func (l *Loader) loadFile(ctx context.Context, name, file string) error {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}

	// Register before executing the body so that circular imports see
	// the partially initialized module, exactly as the runtime does.
	mod := l.registry.Register(&pymodule.Module{Name: name, File: file})

	info, err := os.Stat(file)
	if err != nil {
		return pgerrors.New(pgerrors.ModuleNotFound, "stat "+file, err)
	}
	if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
		l.logger.Warn("Skipping import extraction: file too large", map[string]interface{}{
			"module": name,
			"file":   file,
			"size":   info.Size(),
		})
		return nil
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return pgerrors.New(pgerrors.ModuleNotFound, "read "+file, err)
	}

	statements, err := pyparse.ExtractImports(ctx, source)
	if err != nil {
		return pgerrors.New(pgerrors.ParseFailed, "extract imports from "+file, err)
	}

	l.logger.Debug("Loaded module", map[string]interface{}{
		"module":  name,
		"file":    file,
		"imports": len(statements),
	})

	for _, stmt := range statements {
		if err := l.processStatement(ctx, mod, stmt); err != nil {
			return err
		}
	}

	return nil
}

// processStatement performs the loads one import statement implies,
// then fires the hook with the corresponding event.
func (l *Loader) processStatement(ctx context.Context, mod *pymodule.Module, stmt pyparse.Statement) error {
	ev := pyimport.Event{
		Name:      stmt.Module,
		Requester: mod,
		FromList:  stmt.Names,
		Level:     stmt.Level,
	}

	if stmt.Names == nil {
		// Plain "import a.b.c" loads the whole chain.
		if err := l.loadChain(ctx, strings.Split(stmt.Module, ".")); err != nil {
			return err
		}
	} else {
		if err := l.loadFromImport(ctx, ev); err != nil {
			return err
		}
	}

	if l.hook != nil {
		l.hook(ev)
	}

	return nil
}

// loadFromImport loads the base path of a from-import and then probes
// each fromlist entry as a potential submodule. An entry with no
// locatable source may simply be an attribute of the base module, so a
// locate miss there is tolerated; actual load failures still propagate.
func (l *Loader) loadFromImport(ctx context.Context, ev pyimport.Event) error {
	base := ev.BasePath()
	if len(base) > 0 {
		if err := l.loadChain(ctx, base); err != nil {
			return err
		}
	}

	baseName := strings.Join(base, ".")
	for _, entry := range ev.FromList {
		if entry == "*" || len(base) == 0 {
			continue
		}

		candidate := baseName + "." + entry
		if l.registry.Has(candidate) {
			continue
		}
		if file, ok := l.finder.Locate(candidate); ok {
			if err := l.loadFile(ctx, candidate, file); err != nil {
				return err
			}
		}
	}

	return nil
}

// loadChain loads every prefix of the dotted path in order. A prefix
// with no locatable source is registered as an external module with no
// backing file — the stand-in for stdlib and third-party modules that
// live outside the search paths. The filename filter is what keeps
// such nodes out of the final graph when the caller asks for that.
func (l *Loader) loadChain(ctx context.Context, segments []string) error {
	for i := 1; i <= len(segments); i++ {
		name := strings.Join(segments[:i], ".")
		if l.registry.Has(name) {
			continue
		}

		file, ok := l.finder.Locate(name)
		if !ok {
			l.registry.Register(&pymodule.Module{Name: name})
			continue
		}

		if err := l.loadFile(ctx, name, file); err != nil {
			return err
		}
	}

	return nil
}

func parentPackage(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}
