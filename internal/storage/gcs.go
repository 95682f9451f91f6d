package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStorage implements the Storage interface for Google Cloud Storage.
// Objects cannot be appended to, so lines go to a local staging file that is
// uploaded when the writer is closed.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	tempDir      string
	objectPrefix string
	ctx          context.Context
}

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, tempDir, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		tempDir:      tempDir,
		objectPrefix: objectPrefix,
		ctx:          ctx,
	}, nil
}

func (s *GCSStorage) objectName(name string) string {
	if s.objectPrefix != "" {
		return s.objectPrefix + "/" + name
	}
	return name
}

// GetWriter stages lines locally. In append mode the current object, if any,
// is copied into the staging file first.
func (s *GCSStorage) GetWriter(name string, appendMode bool) (io.WriteCloser, error) {
	stagingPath := filepath.Join(s.tempDir, fmt.Sprintf("%s-%s", uuid.NewString(), name))

	f, err := openLocked(stagingPath, false)
	if err != nil {
		return nil, err
	}

	if appendMode && s.FileExists(name) {
		if err := s.download(name, f); err != nil {
			f.Close()
			os.Remove(stagingPath)
			return nil, err
		}
	}

	return &gcsWriter{lockedFile: f, storage: s, stagingPath: stagingPath, object: s.objectName(name)}, nil
}

func (s *GCSStorage) download(name string, w io.Writer) error {
	r, err := s.client.Bucket(s.bucket).Object(s.objectName(name)).NewReader(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to read existing object: %w", err)
	}
	defer r.Close()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("failed to copy existing object: %w", err)
	}
	return nil
}

func (s *GCSStorage) Location(name string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.objectName(name))
}

// FileExists checks if the object exists
func (s *GCSStorage) FileExists(name string) bool {
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(name)).Attrs(s.ctx)
	return err == nil
}

// UploadFile uploads a local file to GCS
func (s *GCSStorage) UploadFile(localPath, objectName string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(s.ctx, time.Minute*5)
	defer cancel()

	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = "application/x-ndjson"
	if _, err = io.Copy(wc, f); err != nil {
		wc.Close()
		return fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// Close closes the GCS client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

type gcsWriter struct {
	*lockedFile
	storage     *GCSStorage
	stagingPath string
	object      string
}

// Close uploads the staging file. It is kept on disk if the upload fails.
func (w *gcsWriter) Close() error {
	if err := w.lockedFile.Close(); err != nil {
		return err
	}

	if err := w.storage.UploadFile(w.stagingPath, w.object); err != nil {
		slog.Error("Upload failed, staging file kept", "path", w.stagingPath, "error", err)
		return err
	}

	slog.Info("Uploaded output", "object", w.object, "bucket", w.storage.bucket)
	return os.Remove(w.stagingPath)
}
