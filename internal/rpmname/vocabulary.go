package rpmname

import (
	"fmt"
	"sort"
)

// Architectures lists the architecture tags rpm knows about, in the order
// they are searched for as substrings. Matching is case-sensitive.
var Architectures = []string{
	"i386", "i486", "i586", "i686", "athlon", "geode", "pentium3",
	"pentium4", "x86_64", "amd64", "ia64", "alpha", "alphaev5",
	"alphaev56", "alphapca56", "alphaev6", "alphaev67", "sparc",
	"sparcv8", "sparcv9", "sparc64", "sparc64v", "sun4", "sun4c",
	"sun4d", "sun4m", "sun4u", "armv3l", "armv4b", "armv4l",
	"armv5tel", "armv5tejl", "armv6l", "armv7l", "mips", "mipsel",
	"ppc", "ppciseries", "ppcpseries", "ppc64", "ppc8260", "ppc8560",
	"ppc32dy4", "m68k", "m68kmint", "atarist", "atariste", "ataritt",
	"falcon", "atariclone", "milan", "hades", "Sgi", "rs6000", "i370",
	"s390x", "s390", "noarch",
}

// Releases lists the distribution release tags: el5..el9 and fc17..fc29.
var Releases = releaseTags()

var (
	architectureSet = toSet(Architectures)
	releaseSet      = toSet(Releases)

	// longest first, so sparc64 is found before sparc
	architecturesByLength = byLength(Architectures)
)

func releaseTags() []string {
	var tags []string
	for i := 5; i < 10; i++ {
		tags = append(tags, fmt.Sprintf("el%d", i))
	}
	for i := 17; i < 30; i++ {
		tags = append(tags, fmt.Sprintf("fc%d", i))
	}
	return tags
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func byLength(values []string) []string {
	sorted := append([]string(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}

// IsArchitecture reports whether token is a known architecture tag
func IsArchitecture(token string) bool {
	_, ok := architectureSet[token]
	return ok
}

// IsRelease reports whether token is exactly a known release tag
func IsRelease(token string) bool {
	_, ok := releaseSet[token]
	return ok
}
