package srtfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// Writer implements ports.SubtitleWriter on an afero filesystem
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a writer on the OS filesystem
func NewWriter() *Writer {
	return NewWriterFs(afero.NewOsFs())
}

// NewWriterFs creates a writer on the given filesystem
func NewWriterFs(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

func (w *Writer) Exists(path string) bool {
	ok, err := afero.Exists(w.fs, path)
	return err == nil && ok
}

// Write stores content at path via a temporary sibling renamed into place
func (w *Writer) Write(path string, content string, overwrite bool) error {
	if !overwrite && w.Exists(path) {
		return fmt.Errorf("%w: %s", domain.ErrOutputExists, path)
	}

	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.WriteString(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = w.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	if err := w.fs.Chmod(tmpPath, 0644); err != nil && !os.IsNotExist(err) {
		_ = w.fs.Remove(tmpPath)
		return err
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return fmt.Errorf("failed to save subtitles: %w", err)
	}

	return nil
}

var _ ports.SubtitleWriter = (*Writer)(nil)
