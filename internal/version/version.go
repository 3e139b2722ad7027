// Package version exposes the release version embedded from the VERSION file.
package version

import (
	_ "embed"
	"strings"
)

// Name is the program name reported alongside the version.
const Name = "visionplan"

//go:embed VERSION
var raw string

// Get returns the release version without surrounding whitespace.
func Get() string {
	return strings.TrimSpace(raw)
}

// String returns the line printed by `visionplan version`.
func String() string {
	return Name + " version " + Get()
}
