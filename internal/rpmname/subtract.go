package rpmname

import (
	"regexp"
	"strings"
)

// name, then "-" and a version starting with a digit; the name is greedy
var nameVersionPattern = regexp.MustCompile(`^([A-Za-z0-9_+-]+)-([0-9].*)$`)

// VocabularySubtraction removes the architecture and release tags it can
// find anywhere in the filename, then splits what is left into a name and
// a version at the last "-digit" of the leading name run.
type VocabularySubtraction struct{}

// Decompose implements Strategy
func (VocabularySubtraction) Decompose(filename string) Name {
	s := normalize(filename)
	n := newName()

	if arch, ok := findArchitecture(s); ok {
		n.Arch = arch
		s = removeDotted(s, arch)
	}
	if release, ok := findRelease(s); ok {
		n.Release = release
		s = removeDotted(s, release)
	}

	m := nameVersionPattern.FindStringSubmatch(s)
	if m == nil {
		n.Package = s
		return n
	}
	n.Package = m[1]
	n.setVersion(splitVersion(m[2]))
	return n
}

// findArchitecture prefers the right-most dot-delimited segment that is a
// known architecture, then falls back to the longest known architecture
// found anywhere in s.
func findArchitecture(s string) (string, bool) {
	segments := strings.Split(s, ".")
	for i := len(segments) - 1; i > 0; i-- {
		if IsArchitecture(segments[i]) {
			return segments[i], true
		}
	}
	for _, arch := range architecturesByLength {
		if strings.Contains(s, arch) {
			return arch, true
		}
	}
	return "", false
}

// findRelease returns the first release tag found right after a dot in s,
// or failing that anywhere in s, extended with any characters up to the
// next dot (el7_9).
func findRelease(s string) (string, bool) {
	for _, release := range Releases {
		if idx := strings.Index(s, "."+release); idx >= 0 {
			return releaseAt(s, idx+1), true
		}
	}
	for _, release := range Releases {
		if idx := strings.Index(s, release); idx >= 0 {
			return releaseAt(s, idx), true
		}
	}
	return "", false
}

func releaseAt(s string, idx int) string {
	tag := s[idx:]
	if end := strings.IndexByte(tag, '.'); end >= 0 {
		tag = tag[:end]
	}
	return tag
}

// removeDotted removes the last ".token" from s
func removeDotted(s, token string) string {
	idx := strings.LastIndex(s, "."+token)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(token)+1:]
}

// splitVersion splits "2.4.6-90" into major, minor, micro and special.
// Micro keeps any further dots, and when the core has fewer than three
// parts the special part stays attached to the last one, so the segments
// always join back to v.
func splitVersion(v string) [4]string {
	var out [4]string
	core, special, hasSpecial := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if hasSpecial && len(parts) < 3 {
		parts[len(parts)-1] += "-" + special
		special = ""
	}
	copy(out[:Special], parts)
	out[Special] = special
	return out
}
