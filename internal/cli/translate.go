package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/output"
	"github.com/ralt/rpm2cpe/internal/repo"
	"github.com/ralt/rpm2cpe/internal/repodata"
	"github.com/ralt/rpm2cpe/internal/scanner"
	"github.com/ralt/rpm2cpe/internal/signer"
	"github.com/ralt/rpm2cpe/internal/translator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewTranslateCmd creates the translation command
func NewTranslateCmd() *cobra.Command {
	var config models.TranslatorConfig
	var txt, json, csv bool

	cmd := &cobra.Command{
		Use:   "rpm2cpe",
		Short: "Translate RPM names to CPE identifiers",
		Long: `rpm2cpe translates RPM package file names into CPE identifiers
that can be correlated with vulnerability databases.

Packages can be given by name, enumerated from a yum/dnf repository
(enterprise Linux hosts only), found in a directory of .rpm files, or
read from the repodata of a local repository mirror.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			if err := loadConfig(cmd, fs, &config); err != nil {
				return err
			}

			switch {
			case txt:
				config.Format = models.FormatText
			case json:
				config.Format = models.FormatJSON
			case csv:
				config.Format = models.FormatCSV
			}

			// nargs-style: --rpm a b c
			switch {
			case len(config.RPMs) > 0:
				config.RPMs = append(config.RPMs, args...)
			case len(config.Repos) > 0:
				config.Repos = append(config.Repos, args...)
			case len(args) > 0:
				return &models.Error{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("unexpected arguments %v", args),
				}
			}

			if err := validateConfig(&config); err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", config)

			return runTranslation(cmd.Context(), fs, cmd.OutOrStdout(), &config)
		},
	}

	// Input flags
	cmd.Flags().StringSliceVar(&config.RPMs, "rpm", nil, "The RPM name to translate. Can be a comma separated list.")
	cmd.Flags().StringSliceVar(&config.Repos, "repo", nil, "Translate all RPMs available in these repositories. Only executable on an enterprise Linux host.")
	cmd.Flags().StringVar(&config.Dir, "dir", "", "Translate all RPM files found in this directory")
	cmd.Flags().StringVar(&config.Repodata, "repodata", "", "Translate all RPMs listed in the repodata of this local repository mirror")
	cmd.MarkFlagsMutuallyExclusive("rpm", "repo", "dir", "repodata")
	cmd.MarkFlagsOneRequired("rpm", "repo", "dir", "repodata")

	// Generation flags
	cmd.Flags().BoolVarP(&config.Strict, "strict", "s", false, "Return a single CPE with the full version instead of one per version granularity")
	cmd.Flags().BoolVar(&config.IncludeRelease, "release", false, "Append the release tag to match strings")
	cmd.Flags().BoolVar(&config.IncludeArch, "arch", false, "Append the architecture to match strings")
	cmd.Flags().StringVar(&config.Strategy, "strategy", "", "Name decomposition strategy (anchor, vocabulary)")
	cmd.Flags().StringVar(&config.SpecialMode, "special", "", "How the special version part is used (level, suffix)")
	cmd.Flags().IntVar(&config.Concurrency, "concurrency", 0, "Number of names translated in parallel (defaults to the CPU count)")

	// Repository flags
	cmd.Flags().StringVar(&config.PackageManager, "package-manager", "", "Package manager used to list repositories (yum, dnf)")
	cmd.Flags().BoolVar(&config.MakeCache, "makecache", false, "Refresh the repository metadata cache before listing")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", 0, "Timeout of each package manager invocation")

	// Output flags
	cmd.Flags().BoolVarP(&txt, "txt", "t", false, "Plain text output")
	cmd.Flags().BoolVarP(&json, "json", "j", false, "Pretty JSON output")
	cmd.Flags().BoolVarP(&csv, "csv", "c", false, "CSV output (default)")
	cmd.MarkFlagsMutuallyExclusive("txt", "json", "csv")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "", "Write output to this file instead of stdout")

	// Signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key used to sign the output file")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func runTranslation(ctx context.Context, fs afero.Fs, stdout io.Writer, config *models.TranslatorConfig) error {
	t, err := translator.New(config)
	if err != nil {
		return err
	}

	var s signer.Signer
	if config.GPGKeyPath != "" {
		gpgSigner, err := signer.NewGPGSigner(fs, config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.Error{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
		s = gpgSigner
	}

	var data []byte
	switch {
	case len(config.RPMs) > 0:
		logrus.Debugf("Translating %d rpm names", len(config.RPMs))
		result := t.TranslateBatch(config.RPMs)
		data, err = output.FormatRPMs(config.Format, translator.Keys(config.RPMs), result)

	case len(config.Repos) > 0:
		reports := repo.Translate(ctx, repo.NewEnumerator(config), t, config.Repos)
		data, err = output.FormatReports(config.Format, reports)

	case config.Dir != "":
		logrus.Infof("Scanning directory: %s", config.Dir)
		filenames, scanErr := scanner.Filenames(ctx, scanner.NewFileSystemScanner(), config.Dir)
		data, err = output.FormatReports(config.Format, []translator.Report{
			sourceReport(t, config.Dir, filenames, scanErr),
		})

	case config.Repodata != "":
		logrus.Infof("Reading repository metadata: %s", config.Repodata)
		filenames, readErr := repodata.NewReader(fs).Filenames(config.Repodata)
		data, err = output.FormatReports(config.Format, []translator.Report{
			sourceReport(t, config.Repodata, filenames, readErr),
		})

	default:
		return &models.Error{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("one of --rpm, --repo, --dir or --repodata is required"),
		}
	}
	if err != nil {
		return &models.Error{Type: models.ErrFormat, Err: err}
	}

	return output.NewWriter(fs, stdout, s).Write(config.OutputPath, data)
}

// sourceReport translates the filenames read from a local source, or
// reports why they could not be read
func sourceReport(t *translator.Translator, name string, filenames []string, err error) translator.Report {
	if err != nil {
		logrus.Warnf("Failed to read %s: %v", name, err)
		return translator.Report{
			Name: name,
			Err:  &models.Error{Type: models.ErrFileOp, Subject: name, Err: err},
		}
	}
	return translator.Report{Name: name, Result: t.TranslateBatch(filenames)}
}
