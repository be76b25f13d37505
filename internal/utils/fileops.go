package utils

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFile writes data to a file on fs, creating directories as needed
func WriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if err := EnsureDir(fs, filepath.Dir(path)); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, perm)
}

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(fs afero.Fs, path string) error {
	return fs.MkdirAll(path, 0755)
}
