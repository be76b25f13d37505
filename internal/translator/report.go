package translator

import (
	"errors"

	"github.com/ralt/rpm2cpe/internal/models"
)

// Report is the translation of one package source (a yum repository, a
// directory, a repodata mirror). Either Result or Err is set.
type Report struct {
	Name   string
	Result Result
	Err    error
}

// Message returns the error text shown to users for a failed report,
// without the error type and subject decorations.
func (r Report) Message() string {
	if r.Err == nil {
		return ""
	}
	var e *models.Error
	if errors.As(r.Err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return r.Err.Error()
}
