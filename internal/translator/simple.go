package translator

import (
	"github.com/ralt/rpm2cpe/internal/cpe"
	"github.com/ralt/rpm2cpe/internal/rpmname"
)

// Options selects the optional fields of the match string
type Options struct {
	IncludeRelease bool
	IncludeArch    bool
}

func defaultTranslator(strict bool, opts Options) *Translator {
	return NewWithStrategy(rpmname.AnchorSplit{}, cpe.Options{
		Strict:         strict,
		IncludeRelease: opts.IncludeRelease,
		IncludeArch:    opts.IncludeArch,
		SpecialMode:    cpe.SpecialLevel,
	})
}

// Translate translates one filename with the default strategy
func Translate(filename string, strict bool, opts Options) ([]cpe.CPE, error) {
	return defaultTranslator(strict, opts).Translate(filename)
}

// TranslateBatch translates many filenames with the default strategy
func TranslateBatch(filenames []string, strict bool, opts Options) Result {
	return defaultTranslator(strict, opts).TranslateBatch(filenames)
}
