package pyimport

import (
	"reflect"
	"testing"

	"pygraph/internal/pymodule"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		name      string
		requester *pymodule.Module
		want      string
	}{
		{"named requester", &pymodule.Module{Name: "an.importing.module"}, "an.importing.module"},
		{"unnamed requester", &pymodule.Module{}, pymodule.Unknown},
		{"no requester", nil, pymodule.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Event{Name: "some.module.name", Requester: tt.requester, FromList: []string{}}
			if got := ev.FromName(); got != tt.want {
				t.Errorf("FromName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	requester := &pymodule.Module{Name: "some.module"}

	tests := []struct {
		desc  string
		name  string
		level int
		want  []string
	}{
		// from . import module2
		{"one dot", "", 1, []string{"some"}},
		// from .module2 import SomeClass
		{"one dot with name", "module2", 1, []string{"some", "module2"}},
		// from .. import module
		{"two dots", "", 2, []string{}},
		// from some.module2 import SomeClass
		{"absolute", "some.module2", 0, []string{"some", "module2"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ev := Event{Name: tt.name, Requester: requester, FromList: []string{"x"}, Level: tt.level}
			if got := ev.BasePath(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BasePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetModulesPlainImport(t *testing.T) {
	reg := pymodule.NewRegistry()

	// A plain import resolves to the requested name verbatim,
	// regardless of level and registry contents.
	for _, level := range []int{0, 1, 2} {
		ev := Event{
			Name:      "pkg.sub",
			Requester: &pymodule.Module{Name: "caller"},
			FromList:  nil,
			Level:     level,
		}

		got := ev.TargetModules(reg)
		want := []string{"pkg.sub"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("TargetModules() with level %d = %v, want %v", level, got, want)
		}
	}
}

func TestTargetModulesRelativeImport(t *testing.T) {
	reg := pymodule.NewRegistry()
	reg.Register(&pymodule.Module{Name: "pkg"})
	reg.Register(&pymodule.Module{Name: "pkg.a"})

	// from . import a, issued inside pkg.sub
	ev := Event{
		Name:      "",
		Requester: &pymodule.Module{Name: "pkg.sub"},
		FromList:  []string{"a"},
		Level:     1,
	}

	got := ev.TargetModules(reg)
	want := []string{"pkg.a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetModules() = %v, want %v", got, want)
	}
}

func TestTargetModulesAttributeFallback(t *testing.T) {
	reg := pymodule.NewRegistry()
	reg.Register(&pymodule.Module{Name: "pkg"})

	// from pkg import a, b where neither pkg.a nor pkg.b is a loaded
	// module: both entries fall back to pkg, deduplicated to one target.
	ev := Event{
		Name:      "pkg",
		Requester: &pymodule.Module{Name: "caller"},
		FromList:  []string{"a", "b"},
		Level:     0,
	}

	got := ev.TargetModules(reg)
	want := []string{"pkg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetModules() = %v, want %v", got, want)
	}
}

func TestTargetModulesDistinctSubmodules(t *testing.T) {
	reg := pymodule.NewRegistry()
	reg.Register(&pymodule.Module{Name: "pkg"})
	reg.Register(&pymodule.Module{Name: "pkg.a"})
	reg.Register(&pymodule.Module{Name: "pkg.b"})

	ev := Event{
		Name:      "pkg",
		Requester: &pymodule.Module{Name: "caller"},
		FromList:  []string{"a", "b"},
		Level:     0,
	}

	got := ev.TargetModules(reg)
	want := []string{"pkg.a", "pkg.b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetModules() = %v, want %v", got, want)
	}
}

func TestTargetModulesUnresolvableDropped(t *testing.T) {
	reg := pymodule.NewRegistry()

	// No prefix of the candidate path is loaded: the target is
	// silently dropped, not reported as an error or an unknown edge.
	ev := Event{
		Name:      "ghost",
		Requester: &pymodule.Module{Name: "caller"},
		FromList:  []string{"thing"},
		Level:     0,
	}

	if got := ev.TargetModules(reg); len(got) != 0 {
		t.Errorf("TargetModules() = %v, want empty", got)
	}
}
