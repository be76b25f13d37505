package models

import "fmt"

// Package is the identity of an RPM as reported by a package header or
// repository metadata, before it is flattened back into a filename.
type Package struct {
	Name         string
	Epoch        string
	Version      string
	Release      string
	Architecture string

	// Location is where the package was found (file path or metadata href)
	Location string
}

// Filename renders the package as name-version-release.arch, the shape
// the name decomposer expects. The epoch is never part of a filename.
func (p Package) Filename() string {
	s := p.Name
	if p.Version != "" {
		s += "-" + p.Version
	}
	if p.Release != "" {
		s += "-" + p.Release
	}
	if p.Architecture != "" {
		s = fmt.Sprintf("%s.%s", s, p.Architecture)
	}
	return s
}
