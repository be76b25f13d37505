// Package translator turns RPM filenames into CPE identifiers, one at a time
// or in batches.
package translator

import (
	"errors"
	"runtime"
	"slices"

	"github.com/ralt/rpm2cpe/internal/cpe"
	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/rpmname"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyName is returned for a filename that is empty once its extension
// has been stripped
var ErrEmptyName = errors.New("empty package name")

// Translator decomposes filenames with one strategy and generates
// identifiers with one set of options. It holds no mutable state and is safe
// for concurrent use.
type Translator struct {
	strategy    rpmname.Strategy
	opts        cpe.Options
	concurrency int
}

// New creates a translator from configuration
func New(config *models.TranslatorConfig) (*Translator, error) {
	strategy, err := rpmname.StrategyByName(config.Strategy)
	if err != nil {
		return nil, &models.Error{Type: models.ErrInvalidConfig, Err: err}
	}
	special, err := cpe.ParseSpecialMode(config.SpecialMode)
	if err != nil {
		return nil, &models.Error{Type: models.ErrInvalidConfig, Err: err}
	}

	t := NewWithStrategy(strategy, cpe.Options{
		Strict:         config.Strict,
		IncludeRelease: config.IncludeRelease,
		IncludeArch:    config.IncludeArch,
		SpecialMode:    special,
	})
	if config.Concurrency > 0 {
		t.concurrency = config.Concurrency
	}
	return t, nil
}

// NewWithStrategy creates a translator using the given strategy and options
func NewWithStrategy(strategy rpmname.Strategy, opts cpe.Options) *Translator {
	return &Translator{
		strategy:    strategy,
		opts:        opts,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// Translate returns the identifiers for one filename. The only error is
// ErrEmptyName (as a MalformedInput error); anything else, blank names
// included, degrades into a low-quality but well-formed result.
func (t *Translator) Translate(filename string) ([]cpe.CPE, error) {
	source := rpmname.TrimExtension(filename)
	if source == "" {
		return nil, &models.Error{
			Type:    models.ErrMalformedInput,
			Subject: filename,
			Err:     ErrEmptyName,
		}
	}

	name := t.strategy.Decompose(source)
	logrus.Debugf("Decomposed %s: name=%s version=%v release=%s arch=%s",
		source, name.Package, name.Segments(), name.Release, name.Arch)

	return cpe.Generate(name, source, t.opts), nil
}

// Result maps extension-stripped filenames to their identifiers
type Result map[string][]cpe.CPE

// Key returns the Result key of filename
func Key(filename string) string {
	return rpmname.TrimExtension(filename)
}

// Keys returns the Result keys of filenames, in order
func Keys(filenames []string) []string {
	keys := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		keys = append(keys, Key(filename))
	}
	return keys
}

// TranslateBatch translates every filename concurrently. Filenames that
// cannot be translated are logged and left out; they never affect the
// others.
func (t *Translator) TranslateBatch(filenames []string) Result {
	translated := make([][]cpe.CPE, len(filenames))

	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for i, filename := range filenames {
		g.Go(func() error {
			cpes, err := t.Translate(filename)
			if err != nil {
				logrus.Warnf("Skipping %q: %v", filename, err)
				return nil
			}
			translated[i] = cpes
			return nil
		})
	}
	// workers never return an error
	_ = g.Wait()

	result := make(Result, len(filenames))
	for i, filename := range filenames {
		if translated[i] == nil {
			continue
		}
		result[Key(filename)] = translated[i]
	}

	logrus.Debugf("Translated %d of %d filenames", len(result), len(filenames))
	return result
}

// Names returns the translated filenames, sorted
func (r Result) Names() []string {
	names := lo.Keys(map[string][]cpe.CPE(r))
	slices.Sort(names)
	return names
}

// Identifiers returns every match string in the result, deduplicated and
// sorted.
func (r Result) Identifiers() []string {
	all := lo.FlatMap(lo.Values(map[string][]cpe.CPE(r)), func(cpes []cpe.CPE, _ int) []string {
		return cpe.MatchStrings(cpes)
	})
	ids := lo.Uniq(all)
	slices.Sort(ids)
	return ids
}
