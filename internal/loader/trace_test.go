package loader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	pgerrors "pygraph/internal/errors"
	"pygraph/internal/graph"
	"pygraph/internal/logging"
	"pygraph/internal/pyimport"
	"pygraph/internal/pymodule"
)

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Level:  logging.ErrorLevel,
		Format: logging.JSONFormat,
		Output: io.Discard,
	})
}

// writeModules creates Python source files under root.
func writeModules(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func traceOpts(root string) Options {
	return Options{
		SearchPaths: []string{root},
		Logger:      newTestLogger(),
	}
}

func TestTraceTwoModules(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"a.py": "import b\n",
		"b.py": "",
	})

	g, err := Trace(context.Background(), []string{"a"}, traceOpts(root))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Nodes() = %v, want [a b]", got)
	}
	if g.Len() != 1 || !g.HasEdge("a", "b") {
		t.Errorf("Edges() = %v, want exactly (a, b)", g.Edges())
	}
}

func TestTraceRelativeImport(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"pkg/__init__.py": "",
		"pkg/sub.py":      "from . import util\n",
		"pkg/util.py":     "",
	})

	g, err := Trace(context.Background(), []string{"pkg.sub"}, traceOpts(root))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	if !g.HasEdge("pkg.sub", "pkg.util") {
		t.Errorf("Expected edge pkg.sub -> pkg.util, got %v", g.Edges())
	}
}

func TestTraceFromImportAttribute(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"pkg/__init__.py": "X = 1\n",
		"caller.py":       "from pkg import X\n",
	})

	g, err := Trace(context.Background(), []string{"caller"}, traceOpts(root))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	// X is an attribute of pkg, not a submodule: the edge falls back
	// to the containing module.
	if !g.HasEdge("caller", "pkg") {
		t.Errorf("Expected edge caller -> pkg, got %v", g.Edges())
	}
	if g.HasEdge("caller", "pkg.X") {
		t.Error("Attribute import must not produce a pkg.X edge")
	}
}

func TestTraceCircularImports(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"a.py": "import b\n",
		"b.py": "import a\n",
	})

	g, err := Trace(context.Background(), []string{"a"}, traceOpts(root))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	// Cycles are legal and preserved, not collapsed.
	if !g.HasEdge("a", "b") || !g.HasEdge("b", "a") {
		t.Errorf("Expected both cycle edges, got %v", g.Edges())
	}
}

func TestTraceExternalModule(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"a.py": "import os\n",
	})

	g, err := Trace(context.Background(), []string{"a"}, traceOpts(root))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	// Modules outside the search paths still load (as file-less
	// externals) and produce edges when no filter is set.
	if !g.HasEdge("a", "os") {
		t.Errorf("Expected edge a -> os, got %v", g.Edges())
	}
}

func TestTraceFilenameFilter(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"a.py": "import b\nimport os\n",
		"b.py": "",
	})

	opts := traceOpts(root)
	opts.FilenameRegex = regexp.QuoteMeta(root) + "/.*"

	g, err := Trace(context.Background(), []string{"a"}, opts)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	// os has no backing file, so the a -> os edge is excluded along
	// with any orphan node for it.
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Nodes() = %v, want [a b]", got)
	}
	if g.Len() != 1 || !g.HasEdge("a", "b") {
		t.Errorf("Edges() = %v, want exactly (a, b)", g.Edges())
	}
}

func TestTraceDirectoryMode(t *testing.T) {
	root := t.TempDir()
	writeModules(t, root, map[string]string{
		"top.py":    "import helper\n",
		"helper.py": "",
	})

	opts := Options{
		DirectoryMode: true,
		Logger:        newTestLogger(),
	}

	g, err := Trace(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}

	if !g.HasEdge("top", "helper") {
		t.Errorf("Expected edge top -> helper, got %v", g.Edges())
	}
}

func TestTraceMissingModule(t *testing.T) {
	_, err := Trace(context.Background(), []string{"definitely.not.there"}, traceOpts(t.TempDir()))
	if err == nil {
		t.Fatal("Expected error for missing module, got nil")
	}
	if got := pgerrors.CodeOf(err); got != pgerrors.ModuleNotFound {
		t.Errorf("CodeOf(err) = %v, want ModuleNotFound", got)
	}
}

func TestInstallHookRestore(t *testing.T) {
	ld := New(pymodule.NewFinder(nil, nil), pymodule.NewRegistry(), newTestLogger(), 0)

	var calls []string
	restoreFirst := ld.InstallHook(func(ev pyimport.Event) { calls = append(calls, "first") })
	restoreSecond := ld.InstallHook(func(ev pyimport.Event) { calls = append(calls, "second") })

	ld.hook(pyimport.Event{})
	restoreSecond()
	ld.hook(pyimport.Event{})
	restoreFirst()

	if ld.hook != nil {
		t.Error("Expected nil hook after final restore")
	}
	if !reflect.DeepEqual(calls, []string{"second", "first"}) {
		t.Errorf("Hook calls = %v, want [second first]", calls)
	}
}

func TestUnknownRequesterSentinel(t *testing.T) {
	reg := pymodule.NewRegistry()
	g, err := graph.New(reg, "")
	if err != nil {
		t.Fatalf("graph.New failed: %v", err)
	}

	// An import with no requester context degrades to the sentinel
	// node instead of failing.
	ev := pyimport.Event{Name: "b", Requester: nil, FromList: nil}
	for _, target := range ev.TargetModules(reg) {
		g.Record(ev.FromName(), target)
	}

	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"<unknown>", "b"}) {
		t.Errorf("Nodes() = %v, want [<unknown> b]", got)
	}
	if !g.HasEdge(pymodule.Unknown, "b") {
		t.Errorf("Expected edge from the unknown sentinel, got %v", g.Edges())
	}
}
