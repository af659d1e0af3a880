package loader

import (
	"context"

	"pygraph/internal/graph"
	"pygraph/internal/logging"
	"pygraph/internal/pyimport"
	"pygraph/internal/pymodule"
)

// Options configures one tracing run.
type Options struct {
	// DirectoryMode treats the module specs as directories to expand
	// into module lists instead of literal dotted names.
	DirectoryMode bool

	// FilenameRegex restricts recorded edges to those whose endpoints'
	// backing files fully match the pattern. Empty keeps everything.
	FilenameRegex string

	// SearchPaths lists extra module search roots. The current
	// directory is always consulted first.
	SearchPaths []string

	// IgnoreDirs lists directory names skipped during expansion.
	IgnoreDirs []string

	// MaxFileSizeBytes caps the size of source files the loader parses.
	MaxFileSizeBytes int64

	// Logger receives run diagnostics. Nil discards them.
	Logger *logging.Logger
}

// Trace runs one complete pass: expand the module specs, install the
// recording hook, load everything, restore the hook, and return the
// accumulated graph. Load failures abort the run with no output
// artifact; that is deliberate — a tool for visualizing imports should
// not mask load failures in the code it inspects.
func Trace(ctx context.Context, specs []string, opts Options) (*graph.ImportGraph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.ErrorLevel,
		})
	}

	finder := pymodule.NewFinder(append([]string{"."}, opts.SearchPaths...), opts.IgnoreDirs)
	registry := pymodule.NewRegistry()
	ld := New(finder, registry, logger, opts.MaxFileSizeBytes)

	names, err := expandSpecs(finder, specs, opts.DirectoryMode)
	if err != nil {
		return nil, err
	}

	g, err := graph.New(registry, opts.FilenameRegex)
	if err != nil {
		return nil, err
	}

	restore := ld.InstallHook(func(ev pyimport.Event) {
		from := ev.FromName()
		for _, target := range ev.TargetModules(registry) {
			g.Record(from, target)
		}
	})
	defer restore()

	for _, name := range names {
		if err := ld.Load(ctx, name); err != nil {
			return nil, err
		}
	}

	logger.Info("Trace complete", map[string]interface{}{
		"specs":   len(specs),
		"modules": registry.Len(),
		"nodes":   len(g.Nodes()),
		"edges":   g.Len(),
	})

	return g, nil
}

// expandSpecs resolves the positional specs into dotted module names.
// In directory mode each directory joins the search path before being
// expanded, mirroring the reference behavior of extending sys.path.
func expandSpecs(finder *pymodule.Finder, specs []string, directoryMode bool) ([]string, error) {
	if !directoryMode {
		return specs, nil
	}

	var names []string
	for _, dir := range specs {
		finder.AddPath(dir)
		collected, err := finder.CollectModules(dir)
		if err != nil {
			return nil, err
		}
		names = append(names, collected...)
	}

	return names, nil
}
