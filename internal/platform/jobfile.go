package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadJobFile returns the text of a UTF-8 job file. A leading byte order
// mark, as written by some Windows editors, is removed.
func ReadJobFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("read job file %s: %w", path, err)
	}
	return string(data), nil
}

// WriteJobFile writes text verbatim to path, creating parent directories
func WriteJobFile(path, text string) error {
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create job file directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), DefaultFilePermissions); err != nil {
		return fmt.Errorf("write job file %s: %w", path, err)
	}
	return nil
}
