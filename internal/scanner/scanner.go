package scanner

import "context"

// ScannedPackage represents an RPM file found during scanning
type ScannedPackage struct {
	Path string
	Size int64
}

// Scanner interface for finding RPM files
type Scanner interface {
	// Scan recursively scans a directory for RPM files
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)

	// IsRPM reports whether a file is an RPM package
	IsRPM(path string) (bool, error)
}
