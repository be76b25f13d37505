package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans a directory for RPM files
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedPackage, error) {
	var packages []ScannedPackage

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			return nil
		}

		isRPM, err := s.IsRPM(path)
		if err != nil {
			logrus.Warnf("Failed to inspect %s: %v", path, err)
			return nil
		}
		if !isRPM {
			return nil
		}

		logrus.Debugf("Found rpm package: %s", path)

		packages = append(packages, ScannedPackage{
			Path: path,
			Size: info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Infof("Found %d packages in %s", len(packages), dir)
	return packages, nil
}

// IsRPM reports whether a file is an RPM package
func (s *FileSystemScanner) IsRPM(path string) (bool, error) {
	return DetectRPM(path)
}

// Filenames scans dir and returns one filename per RPM found. The filename
// is rebuilt from the package header when it can be read, and is the file's
// base name otherwise.
func Filenames(ctx context.Context, s Scanner, dir string) ([]string, error) {
	scanned, err := s.Scan(ctx, dir)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(scanned))
	for _, sp := range scanned {
		pkg, err := ReadPackage(sp.Path)
		if err != nil {
			logrus.Debugf("Using file name for %s: %v", sp.Path, err)
			filenames = append(filenames, filepath.Base(sp.Path))
			continue
		}
		filenames = append(filenames, pkg.Filename())
	}
	return filenames, nil
}
