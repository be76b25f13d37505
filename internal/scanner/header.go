package scanner

import (
	"fmt"
	"os"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// ReadPackage reads the identity of an RPM file from its header
func ReadPackage(path string) (*models.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	pkg := &models.Package{
		Name:         getStringTag(rpm, rpmutils.NAME),
		Version:      getStringTag(rpm, rpmutils.VERSION),
		Release:      getStringTag(rpm, rpmutils.RELEASE),
		Architecture: getStringTag(rpm, rpmutils.ARCH),
		Location:     path,
	}
	if epoch, ok := getIntTag(rpm, rpmutils.EPOCH); ok {
		pkg.Epoch = fmt.Sprintf("%d", epoch)
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("RPM header of %s has no name", path)
	}
	return pkg, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// getIntTag safely gets an integer tag from RPM
func getIntTag(rpm *rpmutils.Rpm, tag int) (int64, bool) {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case []int32:
		if len(v) > 0 {
			return int64(v[0]), true
		}
	case []int64:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}
