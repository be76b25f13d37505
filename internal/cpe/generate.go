package cpe

import (
	"fmt"

	"github.com/ralt/rpm2cpe/internal/rpmname"
)

// SpecialMode controls how the special version segment is used in
// non-strict generation.
type SpecialMode string

const (
	// SpecialLevel makes special its own granularity: 2, 2.4, 2.4.6, 2.4.6-90
	SpecialLevel SpecialMode = "level"
	// SpecialSuffix appends special to the longest version only: 2, 2.4, 2.4.6-90
	SpecialSuffix SpecialMode = "suffix"
)

// ParseSpecialMode validates a special mode name. Empty means SpecialLevel.
func ParseSpecialMode(s string) (SpecialMode, error) {
	switch SpecialMode(s) {
	case SpecialLevel, "":
		return SpecialLevel, nil
	case SpecialSuffix:
		return SpecialSuffix, nil
	default:
		return "", fmt.Errorf("unknown special mode %q (want %s or %s)", s, SpecialLevel, SpecialSuffix)
	}
}

// Options controls identifier generation
type Options struct {
	Strict         bool
	IncludeRelease bool
	IncludeArch    bool
	SpecialMode    SpecialMode
}

// Generate returns the identifiers for a decomposed name, ordered by growing
// version length. It never returns an empty slice.
func Generate(name rpmname.Name, source string, opts Options) []CPE {
	base := CPE{
		Product: name.Package,
		Source:  source,
	}
	if opts.IncludeRelease {
		base.Release = orUnset(name.Release)
	}
	if opts.IncludeArch {
		base.Arch = orUnset(name.Arch)
	}

	segs := name.Segments()
	if opts.Strict || len(segs) == 0 {
		c := base
		c.Version = name.VersionString()
		return []CPE{c}
	}

	levels := len(segs)
	if opts.SpecialMode == SpecialSuffix && levels > rpmname.Special {
		levels = rpmname.Special
	}

	cpes := make([]CPE, 0, levels)
	for i := 1; i <= levels; i++ {
		c := base
		c.Version = rpmname.JoinVersion(segs[:i])
		cpes = append(cpes, c)
	}
	if levels < len(segs) {
		cpes[len(cpes)-1].Version = rpmname.JoinVersion(segs)
	}
	return cpes
}

func orUnset(s string) string {
	if s == "" {
		return rpmname.Unset
	}
	return s
}
