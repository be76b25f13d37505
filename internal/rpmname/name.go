// Package rpmname splits RPM filenames into package name, version
// segments, release tag and architecture tag.
//
// RPM filenames have no unambiguous grammar, so decomposition is heuristic.
// Two strategies are provided and selected by configuration: AnchorSplit and
// VocabularySubtraction. Both always return a well-formed Name, never an
// error.
package rpmname

// Unset is the value of an absent release or architecture tag, and of the
// version string when no version segment is present.
const Unset = "*"

// Version segment positions
const (
	Major = iota
	Minor
	Micro
	Special
)

// Name is a decomposed RPM filename.
//
// Version segments are filled contiguously from Major: Minor is never set
// without Major, Micro never without Minor, and so on.
type Name struct {
	Package string
	Version [4]string
	Release string
	Arch    string
}

func newName() Name {
	return Name{Release: Unset, Arch: Unset}
}

// Major returns the major version segment
func (n Name) Major() string { return n.Version[Major] }

// Minor returns the minor version segment
func (n Name) Minor() string { return n.Version[Minor] }

// Micro returns the micro version segment
func (n Name) Micro() string { return n.Version[Micro] }

// Special returns the special version segment
func (n Name) Special() string { return n.Version[Special] }

// Segments returns the present version segments, starting from Major and
// stopping at the first unset one.
func (n Name) Segments() []string {
	var segs []string
	for _, v := range n.Version {
		if v == "" {
			break
		}
		segs = append(segs, v)
	}
	return segs
}

// VersionString joins every present segment, or returns Unset.
func (n Name) VersionString() string {
	segs := n.Segments()
	if len(segs) == 0 {
		return Unset
	}
	return JoinVersion(segs)
}

// JoinVersion joins version segments: "." between major, minor and micro,
// "-" before special.
func JoinVersion(segs []string) string {
	var s string
	for i, seg := range segs {
		switch i {
		case Major:
			s = seg
		case Special:
			s += "-" + seg
		default:
			s += "." + seg
		}
	}
	return s
}

// assign puts token into the next empty version slot. Tokens beyond
// Special are dropped.
func (n *Name) assign(token string) {
	for i := range n.Version {
		if n.Version[i] == "" {
			n.Version[i] = token
			return
		}
	}
}

// setVersion fills the segments from values, truncating at the first empty
// one so segments stay contiguous.
func (n *Name) setVersion(values [4]string) {
	for i, v := range values {
		if v == "" {
			return
		}
		n.Version[i] = v
	}
}
