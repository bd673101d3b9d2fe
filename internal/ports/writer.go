package ports

// SubtitleWriter persists rendered subtitle text.
type SubtitleWriter interface {
	// Write stores content at path verbatim. Existing files are replaced only
	// when overwrite is set; otherwise domain.ErrOutputExists is returned.
	Write(path string, content string, overwrite bool) error

	// Exists reports whether path already exists.
	Exists(path string) bool
}
