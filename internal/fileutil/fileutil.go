// Package fileutil provides the filesystem scanning primitives used by the
// classifier and asset selector: recursive file listings with hidden files
// excluded, and a depth-bounded probe for whether a directory contains any
// regular file at all.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListFiles returns every regular file under root, recursively, in lexical
// walk order. Hidden files and hidden directories (dot-prefixed) are
// excluded. Paths are absolute.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if hidden(entry.Name()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// HasFileWithin reports whether dir contains at least one regular,
// non-hidden file within the given number of directory levels. Depth 1
// inspects only the immediate entries of dir.
func HasFileWithin(dir string, depth int) (bool, error) {
	if depth < 1 {
		return false, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if hidden(entry.Name()) {
			continue
		}
		if entry.Type().IsRegular() {
			return true, nil
		}
	}
	for _, entry := range entries {
		if !entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		found, err := HasFileWithin(filepath.Join(dir, entry.Name()), depth-1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
