package models

import "time"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// TranslatorConfig contains configuration for a translation run. Fields carry
// yaml tags so the same struct can be loaded from a config file and then
// overridden by command-line flags.
type TranslatorConfig struct {
	// Input selection (exactly one is used)
	RPMs     []string `yaml:"-"`
	Repos    []string `yaml:"-"`
	Dir      string   `yaml:"-"`
	Repodata string   `yaml:"-"`

	// Identifier generation
	Strict         bool   `yaml:"strict"`
	IncludeRelease bool   `yaml:"include_release"`
	IncludeArch    bool   `yaml:"include_arch"`
	Strategy       string `yaml:"strategy"`     // anchor or vocabulary
	SpecialMode    string `yaml:"special_mode"` // level or suffix

	// Batch
	Concurrency int `yaml:"concurrency"`

	// Repository enumeration
	PackageManager string        `yaml:"package_manager"` // yum or dnf
	MakeCache      bool          `yaml:"make_cache"`
	Timeout        time.Duration `yaml:"timeout"`

	// Output
	Format     string `yaml:"format"`
	OutputPath string `yaml:"output"`

	// Signing
	GPGKeyPath    string `yaml:"gpg_key"`
	GPGPassphrase string `yaml:"-"`

	// HTTP server
	ListenAddr string `yaml:"listen"`
}
