package cpe

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/knqyf263/go-cpe/naming"
	"github.com/ralt/rpm2cpe/internal/rpmname"
)

var httpd = rpmname.Name{
	Package: "httpd",
	Version: [4]string{"2", "4", "6", "90"},
	Release: "el7",
	Arch:    "x86_64",
}

func versions(cpes []CPE) []string {
	out := make([]string, 0, len(cpes))
	for _, c := range cpes {
		out = append(out, c.Version)
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   rpmname.Name
		opts Options
		want []string
	}{
		{
			name: "one identifier per granularity",
			in:   httpd,
			opts: Options{SpecialMode: SpecialLevel},
			want: []string{
				"cpe:/a:*:httpd:2",
				"cpe:/a:*:httpd:2.4",
				"cpe:/a:*:httpd:2.4.6",
				"cpe:/a:*:httpd:2.4.6-90",
			},
		},
		{
			name: "special as suffix",
			in:   httpd,
			opts: Options{SpecialMode: SpecialSuffix},
			want: []string{
				"cpe:/a:*:httpd:2",
				"cpe:/a:*:httpd:2.4",
				"cpe:/a:*:httpd:2.4.6-90",
			},
		},
		{
			name: "strict",
			in:   httpd,
			opts: Options{Strict: true},
			want: []string{"cpe:/a:*:httpd:2.4.6-90"},
		},
		{
			name: "release and arch",
			in:   httpd,
			opts: Options{Strict: true, IncludeRelease: true, IncludeArch: true},
			want: []string{"cpe:/a:*:httpd:2.4.6-90:el7:x86_64"},
		},
		{
			name: "arch only",
			in:   httpd,
			opts: Options{Strict: true, IncludeArch: true},
			want: []string{"cpe:/a:*:httpd:2.4.6-90:x86_64"},
		},
		{
			name: "no version",
			in:   rpmname.Name{Package: "bash", Release: rpmname.Unset, Arch: "x86_64"},
			opts: Options{},
			want: []string{"cpe:/a:*:bash:*"},
		},
		{
			name: "unset release is a wildcard",
			in:   rpmname.Name{Package: "bash", Release: rpmname.Unset, Arch: "x86_64"},
			opts: Options{IncludeRelease: true, IncludeArch: true},
			want: []string{"cpe:/a:*:bash:*:*:x86_64"},
		},
		{
			name: "empty fields are wildcards",
			in:   rpmname.Name{Package: "bash"},
			opts: Options{IncludeRelease: true, IncludeArch: true},
			want: []string{"cpe:/a:*:bash:*:*:*"},
		},
		{
			name: "suffix mode without special",
			in:   rpmname.Name{Package: "foo", Version: [4]string{"1", "2"}},
			opts: Options{SpecialMode: SpecialSuffix},
			want: []string{"cpe:/a:*:foo:1", "cpe:/a:*:foo:1.2"},
		},
		{
			name: "missing product",
			in:   rpmname.Name{Version: [4]string{"1"}},
			opts: Options{Strict: true},
			want: []string{"error: src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchStrings(Generate(tt.in, "src", tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateCountMatchesSegments(t *testing.T) {
	for k := 1; k <= 4; k++ {
		var n rpmname.Name
		n.Package = "pkg"
		for i := range k {
			n.Version[i] = "1"
		}
		cpes := Generate(n, "pkg", Options{SpecialMode: SpecialLevel})
		if len(cpes) != k {
			t.Errorf("%d segments gave %d identifiers, want %d", k, len(cpes), k)
		}
		if got := cpes[len(cpes)-1].Version; got != n.VersionString() {
			t.Errorf("longest version = %q, want %q", got, n.VersionString())
		}
	}
}

func TestGenerateVersionsGrow(t *testing.T) {
	got := versions(Generate(httpd, "httpd", Options{}))
	for i := 1; i < len(got); i++ {
		if !strings.HasPrefix(got[i], got[i-1]) {
			t.Errorf("version %q does not extend %q", got[i], got[i-1])
		}
	}
}

func TestURI(t *testing.T) {
	c := CPE{Product: "httpd", Version: "2.4.6-90", Release: "el7", Arch: "x86_64"}

	if got, want := c.URI(), "cpe:2.3:a:*:httpd:2.4.6-90:*:*:*:*:*:*:*"; got != want {
		t.Errorf("URI() = %q, want %q", got, want)
	}

	wfn, err := naming.UnbindFS(c.URI())
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", c.URI(), err)
	}
	if got := wfn.GetString("product"); got != "httpd" {
		t.Errorf("product = %q, want httpd", got)
	}
	if got := wfn.GetString("version"); got != "2.4.6-90" {
		t.Errorf("version = %q, want 2.4.6-90", got)
	}
	if got := wfn.GetString("vendor"); got != "ANY" {
		t.Errorf("vendor = %q, want ANY", got)
	}
}

func TestRoundTripDottedVersion(t *testing.T) {
	n := rpmname.AnchorSplit{}.Decompose("foo-1.2.3.rpm")
	cpes := Generate(n, "foo-1.2.3", Options{Strict: true})
	if len(cpes) != 1 {
		t.Fatalf("got %d identifiers, want 1", len(cpes))
	}

	nonStrict := versions(Generate(n, "foo-1.2.3", Options{}))
	if diff := cmp.Diff([]string{"1", "1.2", "1.2.3"}, nonStrict); diff != "" {
		t.Errorf("non-strict versions mismatch (-want +got):\n%s", diff)
	}

	wfn, err := naming.UnbindFS(cpes[0].URI())
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", cpes[0].URI(), err)
	}
	if got := wfn.GetString("version"); got != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", got)
	}
}

func TestInvalidCPE(t *testing.T) {
	c := CPE{Product: "foo", Source: "foo-1.0"}
	if c.Valid() {
		t.Fatal("CPE without version should be invalid")
	}
	want := "error: foo-1.0"
	if got := c.MatchString(); got != want {
		t.Errorf("MatchString() = %q, want %q", got, want)
	}
	if got := c.URI(); got != want {
		t.Errorf("URI() = %q, want %q", got, want)
	}
}

func TestRecord(t *testing.T) {
	c := CPE{Product: "httpd", Version: "2.4"}
	want := Record{
		Vulnerable:  true,
		MatchString: "cpe:/a:*:httpd:2.4",
		URI:         "cpe:2.3:a:*:httpd:2.4:*:*:*:*:*:*:*",
	}
	if diff := cmp.Diff(want, c.Record()); diff != "" {
		t.Errorf("Record() mismatch (-want +got):\n%s", diff)
	}
	if got := c.String(); got != want.MatchString+","+want.URI {
		t.Errorf("String() = %q", got)
	}
}

func TestParseSpecialMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SpecialMode
		wantErr bool
	}{
		{"", SpecialLevel, false},
		{"level", SpecialLevel, false},
		{"suffix", SpecialSuffix, false},
		{"prefix", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSpecialMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSpecialMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSpecialMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
