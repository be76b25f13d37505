package rpmname

import (
	"fmt"
	"regexp"
	"strings"
)

// Extension is the file extension stripped before decomposition
const Extension = ".rpm"

// Strategy names accepted by StrategyByName
const (
	StrategyAnchor     = "anchor"
	StrategyVocabulary = "vocabulary"
)

// Strategy decomposes an RPM filename. Implementations must be safe for
// concurrent use and must not fail: malformed input yields a best-effort
// Name.
type Strategy interface {
	Decompose(filename string) Name
}

// StrategyByName returns the strategy registered under name
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case StrategyAnchor, "":
		return AnchorSplit{}, nil
	case StrategyVocabulary:
		return VocabularySubtraction{}, nil
	default:
		return nil, fmt.Errorf("unknown decomposition strategy %q (want %s or %s)", name, StrategyAnchor, StrategyVocabulary)
	}
}

// TrimExtension removes a trailing ".rpm". Only an exact, case-sensitive
// suffix is removed.
func TrimExtension(filename string) string {
	return strings.TrimSuffix(filename, Extension)
}

// epochPattern matches an epoch prefix on the version ("-1:2.4.6")
var epochPattern = regexp.MustCompile(`-[0-9]+:([0-9])`)

// normalize strips the extension and the epoch, if any
func normalize(filename string) string {
	s := TrimExtension(filename)
	if loc := epochPattern.FindStringSubmatchIndex(s); loc != nil {
		s = s[:loc[0]+1] + s[loc[2]:]
	}
	return s
}
