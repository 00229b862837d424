// Package fsutil provides the file system helpers used to discover manifests and to
// publish generated modules.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrEmptyExtension is returned when no extension is given to FindFilesByExtension.
var ErrEmptyExtension = errors.New("extension must not be empty")

// FindFilesByExtension recursively collects the files below rootPath whose names end
// with extension, in lexical walk order. Hidden directories are skipped. A rootPath
// that is itself a matching file is returned as the only result.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		return nil, ErrEmptyExtension
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
