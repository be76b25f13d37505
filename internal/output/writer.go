package output

import (
	"fmt"
	"io"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/signer"
	"github.com/ralt/rpm2cpe/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// SignatureExt is appended to the report path for its detached signature
const SignatureExt = ".asc"

// Writer sends rendered output to stdout or to a file, optionally signing
// the file
type Writer struct {
	fs     afero.Fs
	stdout io.Writer
	signer signer.Signer
}

// NewWriter creates a writer. s may be nil for unsigned output.
func NewWriter(fs afero.Fs, stdout io.Writer, s signer.Signer) *Writer {
	return &Writer{fs: fs, stdout: stdout, signer: s}
}

// Write writes data to path, or to stdout when path is empty
func (w *Writer) Write(path string, data []byte) error {
	if path == "" {
		if w.signer != nil {
			logrus.Warn("Output goes to stdout, not signing it")
		}
		if _, err := w.stdout.Write(data); err != nil {
			return &models.Error{Type: models.ErrFileOp, Err: fmt.Errorf("failed to write output: %w", err)}
		}
		return nil
	}

	if err := utils.WriteFile(w.fs, path, data, 0644); err != nil {
		return &models.Error{Type: models.ErrFileOp, Subject: path, Err: err}
	}
	logrus.Infof("Output written to: %s", path)

	if w.signer == nil {
		return nil
	}

	signature, err := w.signer.SignDetached(data)
	if err != nil {
		return &models.Error{Type: models.ErrSigning, Subject: path, Err: err}
	}
	sigPath := path + SignatureExt
	if err := utils.WriteFile(w.fs, sigPath, signature, 0644); err != nil {
		return &models.Error{Type: models.ErrFileOp, Subject: sigPath, Err: err}
	}
	logrus.Infof("Output signed with key %s: %s", w.signer.Fingerprint(), sigPath)
	return nil
}
