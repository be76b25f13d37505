// Package repo enumerates the packages a yum/dnf repository makes available
// by running the host package manager.
package repo

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"time"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/translator"
	"github.com/sirupsen/logrus"
)

// DefaultPackageManager is used when none is configured
const DefaultPackageManager = "yum"

// ErrNotEnterpriseLinux is reported when the package manager cannot be run.
// The message is printed to users as is, capitals and punctuation included.
//
//lint:ignore ST1005 user-facing message kept word for word
var ErrNotEnterpriseLinux = errors.New("Unable to obtain repo information.  This is may not be an enterprise Linux host.")

// Enumerator lists the packages available in a repository
type Enumerator struct {
	Runner    Runner
	Binary    string
	MakeCache bool
	Timeout   time.Duration
}

// NewEnumerator creates an enumerator running the configured package manager
func NewEnumerator(config *models.TranslatorConfig) *Enumerator {
	binary := config.PackageManager
	if binary == "" {
		binary = DefaultPackageManager
	}
	return &Enumerator{
		Runner:    ExecRunner{},
		Binary:    binary,
		MakeCache: config.MakeCache,
		Timeout:   config.Timeout,
	}
}

// List returns one filename (name-version.arch) per available package of
// the repository, duplicates included. The command is run once, bounded by
// the timeout, and not retried.
func (e *Enumerator) List(ctx context.Context, repo string) ([]string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	repoArgs := []string{"--disablerepo=*", "--enablerepo=" + repo}

	if e.MakeCache {
		logrus.Debugf("Refreshing metadata cache for %s", repo)
		args := append([]string{"makecache"}, repoArgs...)
		if _, err := e.Runner.Run(ctx, e.Binary, args...); err != nil {
			return nil, toolError(repo, err)
		}
	}

	args := append([]string{"list", "available"}, repoArgs...)
	args = append(args, "--showduplicates")
	logrus.Debugf("Running %s %v", e.Binary, args)

	out, err := e.Runner.Run(ctx, e.Binary, args...)
	if err != nil {
		return nil, toolError(repo, err)
	}

	filenames, err := ParseListOutput(bytes.NewReader(out))
	if err != nil {
		return nil, toolError(repo, err)
	}
	return filenames, nil
}

func toolError(repo string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		logrus.Debugf("Package manager unavailable for %s: %v", repo, err)
		err = ErrNotEnterpriseLinux
	}
	return &models.Error{
		Type:    models.ErrExternalTool,
		Subject: repo,
		Err:     err,
	}
}

// Translate enumerates and translates each repository in turn. A repository
// that cannot be enumerated gets a report carrying the error; the others are
// unaffected.
func Translate(ctx context.Context, e *Enumerator, t *translator.Translator, repos []string) []translator.Report {
	reports := make([]translator.Report, 0, len(repos))
	for _, name := range repos {
		filenames, err := e.List(ctx, name)
		if err != nil {
			logrus.Warnf("Failed to list repository %s: %v", name, err)
			reports = append(reports, translator.Report{Name: name, Err: err})
			continue
		}

		logrus.Infof("Found %d packages in repository %s", len(filenames), name)
		reports = append(reports, translator.Report{
			Name:   name,
			Result: t.TranslateBatch(filenames),
		})
	}
	return reports
}
