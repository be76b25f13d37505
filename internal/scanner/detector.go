package scanner

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// RPM packages start with 0xED 0xAB 0xEE 0xDB
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

// DetectRPM determines whether a file is an RPM based on magic bytes and
// file extension
func DetectRPM(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(rpmMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 && err != io.EOF {
		return false, err
	}

	return bytes.Equal(header[:n], rpmMagic) || filepath.Ext(path) == ".rpm", nil
}
