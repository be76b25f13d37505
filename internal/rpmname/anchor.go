package rpmname

import "regexp"

var (
	// shortest leading run followed by a hyphen and a digit
	anchorPattern = regexp.MustCompile(`^(\S+?)-[0-9]`)

	nameTokenPattern    = regexp.MustCompile(`[A-Za-z0-9_-]+`)
	versionTokenPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)
)

// AnchorSplit splits the filename at the first hyphen followed by a digit.
//
// Everything before the anchor is the package name. Tokens after it are
// classified by vocabulary (architecture, then release) and the rest fill
// the version segments left to right. Without an anchor the filename is
// read as name[.release][.arch].
type AnchorSplit struct{}

// Decompose implements Strategy
func (AnchorSplit) Decompose(filename string) Name {
	s := normalize(filename)
	n := newName()

	loc := anchorPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		decomposeUnversioned(&n, nameTokenPattern.FindAllString(s, -1))
		return n
	}

	n.Package = s[:loc[3]]
	for _, token := range versionTokenPattern.FindAllString(s[loc[3]:], -1) {
		switch {
		case IsArchitecture(token):
			n.Arch = token
		case IsRelease(token):
			n.Release = token
		default:
			n.assign(token)
		}
	}
	return n
}

func decomposeUnversioned(n *Name, tokens []string) {
	switch len(tokens) {
	case 0:
		return
	case 1:
		n.Package = tokens[0]
	case 2:
		n.Package, n.Arch = tokens[0], tokens[1]
	case 3:
		n.Package, n.Release, n.Arch = tokens[0], tokens[1], tokens[2]
	default:
		n.Package = tokens[0]
		if last := tokens[len(tokens)-1]; IsArchitecture(last) {
			n.Arch = last
		}
		for _, token := range tokens[1:] {
			if IsRelease(token) {
				n.Release = token
				break
			}
		}
	}
}
