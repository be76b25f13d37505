package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/output"
	"github.com/spf13/afero"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestTranslateRPMs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "text",
			args: []string{"--rpm", "httpd-2.4.6-90.el7.x86_64.rpm", "-t"},
			want: "cpe:/a:*:httpd:2\ncpe:/a:*:httpd:2.4\ncpe:/a:*:httpd:2.4.6\ncpe:/a:*:httpd:2.4.6-90\n",
		},
		{
			name: "strict with release and arch",
			args: []string{"--rpm", "httpd-2.4.6-90.el7.x86_64.rpm", "-s", "--release", "--arch", "-t"},
			want: "cpe:/a:*:httpd:2.4.6-90:el7:x86_64\n",
		},
		{
			name: "csv is the default",
			args: []string{"--strict", "--rpm", "httpd-2.4.6-90.el7.x86_64.rpm", "bash.x86_64"},
			want: "httpd-2.4.6-90.el7.x86_64,cpe:/a:*:httpd:2.4.6-90\nbash.x86_64,cpe:/a:*:bash:*\n",
		},
		{
			name: "comma separated",
			args: []string{"-s", "-t", "--rpm", "foo-1.2.3.rpm,bar-4.5.rpm"},
			want: "cpe:/a:*:foo:1.2.3\ncpe:/a:*:bar:4.5\n",
		},
		{
			name: "empty names are skipped",
			args: []string{"-s", "-t", "--rpm", ".rpm", "foo-1.2.3.rpm"},
			want: "cpe:/a:*:foo:1.2.3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"-t"}},
		{"two inputs", []string{"--rpm", "a", "--repo", "b"}},
		{"two formats", []string{"--rpm", "a", "-t", "-j"}},
		{"unknown strategy", []string{"--rpm", "a", "--strategy", "magic"}},
		{"unknown special mode", []string{"--rpm", "a", "--special", "prefix"}},
		{"stray arguments", []string{"--dir", "/tmp", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestTranslateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")

	stdout, err := run(t, "--rpm", "httpd-2.4.6-90.el7.x86_64.rpm", "-s", "-j", "-o", path)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty, got %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var doc map[string]output.Entry
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to decode %s: %v", data, err)
	}
	if len(doc["httpd-2.4.6-90.el7.x86_64"].CPE) != 1 {
		t.Errorf("unexpected output: %s", data)
	}
}

func TestTranslateDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pkga-1.0-1.x86_64.rpm"), []byte("fake rpm"), 0644); err != nil {
		t.Fatalf("Failed to write package: %v", err)
	}

	got, err := run(t, "--dir", dir, "-s")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	want := dir + ",pkga-1.0-1.x86_64,cpe:/a:*:pkga:1.0.1\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	got, err := run(t, "--dir", dir, "-t")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.HasPrefix(got, dir+": ") {
		t.Errorf("output = %q, want a labelled error", got)
	}
}

func TestTranslateRepodata(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"repodata/repomd.xml": `<repomd><data type="primary"><location href="repodata/primary.xml"/></data></repomd>`,
		"repodata/primary.xml": `<metadata packages="1"><package type="rpm"><name>httpd</name><arch>x86_64</arch>` +
			`<version epoch="0" ver="2.4.6" rel="90.el7"/></package></metadata>`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	got, err := run(t, "--repodata", dir, "-s", "-t")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if diff := cmp.Diff("cpe:/a:*:httpd:2.4.6-90\n", got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateRepoWithoutPackageManager(t *testing.T) {
	got, err := run(t, "--repo", "base", "--package-manager", "rpm2cpe-test-no-such-package-manager", "-t")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	want := "base: Unable to obtain repo information.  This is may not be an enterprise Linux host.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpm2cpe.yaml")
	config := "strict: true\ninclude_arch: true\nformat: text\n"
	if err := os.WriteFile(path, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	got, err := run(t, "--config", path, "--rpm", "httpd-2.4.6-90.el7.x86_64.rpm")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if diff := cmp.Diff("cpe:/a:*:httpd:2.4.6-90:x86_64\n", got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	// flags win over the file
	got, err = run(t, "--config", path, "--rpm", "httpd-2.4.6-90.el7.x86_64.rpm", "-c", "--arch=false")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if diff := cmp.Diff("httpd-2.4.6-90.el7.x86_64,cpe:/a:*:httpd:2.4.6-90\n", got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `strict: true
include_release: true
strategy: vocabulary
special_mode: suffix
concurrency: 3
package_manager: dnf
make_cache: true
timeout: 30s
format: json
output: /tmp/report.json
gpg_key: /keys/private.asc
listen: ":9000"
`
	if err := afero.WriteFile(fs, "/etc/rpm2cpe.yaml", []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	got, err := loadConfigFile(fs, "/etc/rpm2cpe.yaml")
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	want := &models.TranslatorConfig{
		Strict:         true,
		IncludeRelease: true,
		Strategy:       "vocabulary",
		SpecialMode:    "suffix",
		Concurrency:    3,
		PackageManager: "dnf",
		MakeCache:      true,
		Timeout:        30 * time.Second,
		Format:         "json",
		OutputPath:     "/tmp/report.json",
		GPGKeyPath:     "/keys/private.asc",
		ListenAddr:     ":9000",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := loadConfigFile(fs, "/etc/missing.yaml"); !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("missing file error = %v, want InvalidConfig", err)
	}

	if err := afero.WriteFile(fs, "/etc/bad.yaml", []byte("strict: [\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := loadConfigFile(fs, "/etc/bad.yaml"); !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("bad file error = %v, want InvalidConfig", err)
	}
}

func TestValidateConfigDefaults(t *testing.T) {
	config := &models.TranslatorConfig{}
	if err := validateConfig(config); err != nil {
		t.Fatalf("validateConfig failed: %v", err)
	}
	if config.Strategy != "anchor" || config.SpecialMode != "level" || config.Format != models.FormatCSV {
		t.Errorf("unexpected defaults: %+v", config)
	}
	if config.PackageManager != "yum" || config.Timeout != defaultTimeout || config.Concurrency < 1 {
		t.Errorf("unexpected defaults: %+v", config)
	}

	if err := validateConfig(&models.TranslatorConfig{Format: "xml"}); !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("bad format error = %v, want InvalidConfig", err)
	}
}
