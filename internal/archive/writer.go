package archive

import (
	"archive/zip"
	"fmt"
	"os"
)

// Writer assembles the cleaned output archive. Entries are written
// immediately; Close finalizes the central directory and the file.
type Writer struct {
	file *os.File
	zw   *zip.Writer
	path string
}

// NewWriter creates the output archive at path, truncating any previous
// file.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive %q: %w", path, err)
	}
	return &Writer{file: file, zw: zip.NewWriter(file), path: path}, nil
}

// Path returns the location of the archive being written.
func (w *Writer) Path() string { return w.path }

// Add stores data under the given forward-slash relative path.
func (w *Writer) Add(relPath string, data []byte) error {
	entry, err := w.zw.Create(relPath)
	if err != nil {
		return fmt.Errorf("create archive entry %q: %w", relPath, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("write archive entry %q: %w", relPath, err)
	}
	return nil
}

// Close finalizes the archive. The writer is unusable afterwards.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("finalize archive %q: %w", w.path, err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close archive %q: %w", w.path, err)
	}
	return nil
}
