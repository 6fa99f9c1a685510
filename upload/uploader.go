// Package upload publishes partition files to object storage.
package upload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// Uploader writes a named object to a storage backend.
type Uploader interface {
	Upload(ctx context.Context, objectName string, content []byte) error
}

// GCSUploader uploads objects into a GCS bucket under a fixed prefix.
// Credentials come from the environment (service account JSON or
// application default credentials).
type GCSUploader struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSUploader creates a GCS-backed uploader.
func NewGCSUploader(ctx context.Context, bucket, prefix string) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket, prefix: prefix}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, objectName string, content []byte) error {
	name := objectName
	if u.prefix != "" {
		name = u.prefix + "/" + objectName
	}
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

// FakeUploader records uploads in memory, for tests.
type FakeUploader struct {
	files map[string][]byte
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{files: map[string][]byte{}}
}

func (u *FakeUploader) Upload(_ context.Context, objectName string, content []byte) error {
	u.files[objectName] = content
	return nil
}

func (u *FakeUploader) Has(objectName string) bool {
	_, ok := u.files[objectName]
	return ok
}

// Partitions walks the storage root and uploads every partition file.
// Objects are named <kind>/<date>.parquet, relative to the root. Upload
// failures are collected per file; the first one is returned after the
// walk completes.
func Partitions(ctx context.Context, u Uploader, root string) error {
	var firstErr error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".parquet") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := u.Upload(ctx, filepath.ToSlash(rel), content); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("upload %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return firstErr
}
