package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalFileStorage implements the Storage interface for local filesystem
type LocalFileStorage struct {
	outputDir string
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(outputDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	return &LocalFileStorage{outputDir: outputDir}, nil
}

func (s *LocalFileStorage) path(name string) string {
	return filepath.Join(s.outputDir, name)
}

// GetWriter returns a locked append-only writer for the output file
func (s *LocalFileStorage) GetWriter(name string, appendMode bool) (io.WriteCloser, error) {
	f, err := openLocked(s.path(name), appendMode)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalFileStorage) Location(name string) string {
	return s.path(name)
}

// FileExists checks if a file exists
func (s *LocalFileStorage) FileExists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}
