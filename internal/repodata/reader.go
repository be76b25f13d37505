package repodata

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Reader reads repository metadata from a filesystem
type Reader struct {
	fs afero.Fs
}

// NewReader creates a reader on fs
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// PrimaryLocation returns the href of the primary data file listed in
// repodata/repomd.xml under repoDir
func (r *Reader) PrimaryLocation(repoDir string) (string, error) {
	repomdPath := filepath.Join(repoDir, "repodata", "repomd.xml")
	data, err := afero.ReadFile(r.fs, repomdPath)
	if err != nil {
		return "", fmt.Errorf("failed to read repomd.xml: %w", err)
	}

	var md repomd
	if err := xml.Unmarshal(data, &md); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", repomdPath, err)
	}

	for _, d := range md.Data {
		if d.Type == "primary" && d.Location.Href != "" {
			return d.Location.Href, nil
		}
	}
	return "", fmt.Errorf("no primary data in %s", repomdPath)
}

// Packages returns the packages listed in the primary data of repoDir
func (r *Reader) Packages(repoDir string) ([]models.Package, error) {
	href, err := r.PrimaryLocation(repoDir)
	if err != nil {
		return nil, err
	}

	primaryPath := filepath.Join(repoDir, filepath.FromSlash(href))
	logrus.Debugf("Reading primary metadata from %s", primaryPath)

	raw, err := afero.ReadFile(r.fs, primaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read primary metadata: %w", err)
	}

	data, err := utils.Decompress(primaryPath, raw)
	if err != nil {
		return nil, err
	}

	return ParsePrimary(data)
}

// ParsePrimary parses an uncompressed primary.xml document
func ParsePrimary(data []byte) ([]models.Package, error) {
	var meta metadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse primary metadata: %w", err)
	}

	packages := make([]models.Package, 0, len(meta.Packages))
	for _, p := range meta.Packages {
		if p.Type != "" && p.Type != "rpm" {
			continue
		}
		packages = append(packages, models.Package{
			Name:         p.Name,
			Epoch:        p.Version.Epoch,
			Version:      p.Version.Ver,
			Release:      p.Version.Rel,
			Architecture: p.Arch,
			Location:     p.Location.Href,
		})
	}
	return packages, nil
}

// Filenames returns one filename per package listed in the metadata of
// repoDir
func (r *Reader) Filenames(repoDir string) ([]string, error) {
	packages, err := r.Packages(repoDir)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(packages))
	for _, pkg := range packages {
		filenames = append(filenames, pkg.Filename())
	}

	logrus.Infof("Found %d packages in %s", len(filenames), repoDir)
	return filenames, nil
}
