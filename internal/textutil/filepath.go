package textutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindWDFile looks for the named file in the current working directory and
// then in each of its parents, returning the absolute path of the first one
// found. A relative name is joined to each directory in turn; an absolute one
// is only checked as is. Returns an error wrapping fs.ErrNotExist if none
// is found.
func FindWDFile(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(wd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", fmt.Errorf("%v: %w", name, fs.ErrNotExist)
}
