package cli

import (
	"fmt"
	"runtime"
	"time"

	"github.com/ralt/rpm2cpe/internal/cpe"
	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/output"
	"github.com/ralt/rpm2cpe/internal/repo"
	"github.com/ralt/rpm2cpe/internal/rpmname"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultTimeout = 5 * time.Minute

// loadConfigFile reads a YAML configuration file
func loadConfigFile(fs afero.Fs, path string) (*models.TranslatorConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &models.Error{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to read config file: %w", err),
		}
	}

	var config models.TranslatorConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &models.Error{
			Type:    models.ErrInvalidConfig,
			Subject: path,
			Err:     fmt.Errorf("failed to parse config file: %w", err),
		}
	}
	return &config, nil
}

// applyConfigFile copies values from the config file into config for every
// setting that was not given on the command line
func applyConfigFile(cmd *cobra.Command, config, file *models.TranslatorConfig) {
	changed := cmd.Flags().Changed

	if !changed("strict") {
		config.Strict = file.Strict
	}
	if !changed("release") {
		config.IncludeRelease = file.IncludeRelease
	}
	if !changed("arch") {
		config.IncludeArch = file.IncludeArch
	}
	if !changed("strategy") && file.Strategy != "" {
		config.Strategy = file.Strategy
	}
	if !changed("special") && file.SpecialMode != "" {
		config.SpecialMode = file.SpecialMode
	}
	if !changed("concurrency") && file.Concurrency != 0 {
		config.Concurrency = file.Concurrency
	}
	if !changed("package-manager") && file.PackageManager != "" {
		config.PackageManager = file.PackageManager
	}
	if !changed("makecache") {
		config.MakeCache = file.MakeCache
	}
	if !changed("timeout") && file.Timeout != 0 {
		config.Timeout = file.Timeout
	}
	if config.Format == "" {
		config.Format = file.Format
	}
	if !changed("output") && file.OutputPath != "" {
		config.OutputPath = file.OutputPath
	}
	if !changed("gpg-key") && file.GPGKeyPath != "" {
		config.GPGKeyPath = file.GPGKeyPath
	}
	if !changed("listen") && file.ListenAddr != "" {
		config.ListenAddr = file.ListenAddr
	}
}

// loadConfig merges the --config file, if any, into config
func loadConfig(cmd *cobra.Command, fs afero.Fs, config *models.TranslatorConfig) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil
	}
	file, err := loadConfigFile(fs, path)
	if err != nil {
		return err
	}
	applyConfigFile(cmd, config, file)
	return nil
}

// validateConfig checks settings shared by all commands and fills in
// defaults
func validateConfig(config *models.TranslatorConfig) error {
	if config.Strategy == "" {
		config.Strategy = rpmname.StrategyAnchor
	}
	if _, err := rpmname.StrategyByName(config.Strategy); err != nil {
		return &models.Error{Type: models.ErrInvalidConfig, Err: err}
	}

	if config.SpecialMode == "" {
		config.SpecialMode = string(cpe.SpecialLevel)
	}
	if _, err := cpe.ParseSpecialMode(config.SpecialMode); err != nil {
		return &models.Error{Type: models.ErrInvalidConfig, Err: err}
	}

	if config.Format == "" {
		config.Format = models.FormatCSV
	}
	if err := output.ValidateFormat(config.Format); err != nil {
		return &models.Error{Type: models.ErrInvalidConfig, Err: err}
	}

	if config.PackageManager == "" {
		config.PackageManager = repo.DefaultPackageManager
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}

	return nil
}
