// Package output writes artist records as line-delimited JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jaki95/discogs-scraper/internal/domain"
)

// Sink receives each finished artist record exactly once.
type Sink interface {
	Append(record *domain.ArtistRecord) error
	Close() error
}

type syncer interface {
	Sync() error
}

// JSONLSink writes one compact JSON object per line. Each line is written with a
// single Write and synced, so an interrupted run keeps every completed artist.
type JSONLSink struct {
	w       io.WriteCloser
	written int
}

func NewJSONLSink(w io.WriteCloser) *JSONLSink {
	return &JSONLSink{w: w}
}

func (s *JSONLSink) Append(record *domain.ArtistRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode artist %q: %w", record.Name, err)
	}

	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write artist %q: %w", record.Name, err)
	}
	if f, ok := s.w.(syncer); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to flush artist %q: %w", record.Name, err)
		}
	}

	s.written++
	return nil
}

// Written returns the number of records appended so far.
func (s *JSONLSink) Written() int {
	return s.written
}

func (s *JSONLSink) Close() error {
	return s.w.Close()
}
