// Package cpe renders CPE identifiers for decomposed RPM names.
package cpe

import (
	"fmt"
	"strings"
)

// Vendor is always the wildcard: RPM filenames carry no vendor
const Vendor = "*"

// CPE is one identifier for one version granularity of a package.
//
// Both string formats are rendered from the same value. Release and Arch
// are only set when the caller asked for them; an empty field is left out
// of the match string.
type CPE struct {
	Product string
	Version string
	Release string
	Arch    string

	// Source is the filename the identifier was generated from
	Source string
}

// Valid reports whether the required fields are set
func (c CPE) Valid() bool {
	return c.Product != "" && c.Version != ""
}

// errorString is what a CPE with missing required fields renders as
func (c CPE) errorString() string {
	return "error: " + c.Source
}

// MatchString returns the legacy format cpe:/a:*:<product>:<version>[:<release>][:<arch>]
func (c CPE) MatchString() string {
	if !c.Valid() {
		return c.errorString()
	}
	fields := []string{"cpe:/a", Vendor, c.Product, c.Version}
	if c.Release != "" {
		fields = append(fields, c.Release)
	}
	if c.Arch != "" {
		fields = append(fields, c.Arch)
	}
	return strings.Join(fields, ":")
}

// URI returns the CPE 2.3 formatted string. Release and architecture have no
// place in it; the seven trailing attributes are always wildcards.
func (c CPE) URI() string {
	if !c.Valid() {
		return c.errorString()
	}
	return fmt.Sprintf("cpe:2.3:a:%s:%s:%s:*:*:*:*:*:*:*", Vendor, c.Product, c.Version)
}

// String returns both formats, comma separated
func (c CPE) String() string {
	return c.MatchString() + "," + c.URI()
}

// Record is the serialized form of a CPE
type Record struct {
	Vulnerable  bool   `json:"vulnerable"`
	MatchString string `json:"cpeMatchString"`
	URI         string `json:"cpe23Uri"`
}

// Record returns the serialized form of c
func (c CPE) Record() Record {
	return Record{
		Vulnerable:  true,
		MatchString: c.MatchString(),
		URI:         c.URI(),
	}
}

// MatchStrings returns the match string of every CPE, in order
func MatchStrings(cpes []CPE) []string {
	out := make([]string, 0, len(cpes))
	for _, c := range cpes {
		out = append(out, c.MatchString())
	}
	return out
}
