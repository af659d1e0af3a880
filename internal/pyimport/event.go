// Package pyimport models one intercepted module-load request and
// resolves it to the canonical dotted paths it actually pulled in.
package pyimport

import (
	"strings"

	"pygraph/internal/pymodule"
)

// Event is an immutable record of one import as the loader observed
// it: the requested name, the requesting module, the fromlist for
// "from X import a, b" forms, and the relative-import level. An Event
// is resolved exactly once and never mutated.
type Event struct {
	// Name is the name argument of the load call. Empty for pure
	// relative imports ("from . import x").
	Name string

	// Requester is the module performing the import; nil when the
	// requester context is unknown.
	Requester *pymodule.Module

	// FromList holds the names of a "from X import a, b" form.
	// nil means a plain "import X" — the distinction changes the
	// resolution strategy entirely, so nil and empty are not the same.
	FromList []string

	// Level is the number of leading dots in a relative import;
	// zero means absolute.
	Level int
}

// FromName returns the dotted name of the importing module, or the
// unknown sentinel when no requester context is available.
func (e Event) FromName() string {
	if e.Requester == nil || e.Requester.Name == "" {
		return pymodule.Unknown
	}
	return e.Requester.Name
}

// BasePath computes the resolved base import path for from-import
// forms: the requester's name split on dots, with the last Level
// segments stripped, then the requested name's segments appended.
//
// Level zero strips the whole requester path, not nothing: an absolute
// "from pkg.mod import X" is anchored at the requested name alone.
func (e Event) BasePath() []string {
	fromSegments := strings.Split(e.FromName(), ".")

	keep := len(fromSegments) - e.Level
	if e.Level == 0 || keep < 0 {
		keep = 0
	}

	base := append([]string{}, fromSegments[:keep]...)
	if e.Name != "" {
		base = append(base, strings.Split(e.Name, ".")...)
	}

	return base
}
