package storage

import (
	"io"
)

// Storage defines where the crawl output stream is written.
type Storage interface {
	// GetWriter opens name for line-by-line writing. Unless appendMode is set,
	// existing content is discarded. Closing the writer finalises the output.
	GetWriter(name string, appendMode bool) (io.WriteCloser, error)

	// Location describes where name ends up, for logs and summaries.
	Location(name string) string

	FileExists(name string) bool
}
