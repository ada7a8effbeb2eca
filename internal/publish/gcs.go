package publish

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"

	"pkg.jsn.cam/tablegen/internal/generator"
)

const contentType = "text/csv"

// GCSPublisher uploads files to a Google Cloud Storage bucket.
type GCSPublisher struct {
	client *storage.Client
	bucket string
	prefix string
}

// GCSConfig holds configuration for GCSPublisher.
type GCSConfig struct {
	Bucket string
	Prefix string
}

// NewGCSPublisher creates a client using Application Default Credentials.
func NewGCSPublisher(ctx context.Context, cfg GCSConfig) (*GCSPublisher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSPublisher{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (p *GCSPublisher) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", &generator.IOError{Op: "open", Path: localPath, Err: err}
	}
	defer f.Close()

	name := p.prefix + objectName
	// Cancelling the writer's context aborts the upload without committing it
	uploadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := p.client.Bucket(p.bucket).Object(name).NewWriter(uploadCtx)
	w.ContentType = contentType

	if err := copyOrAbort(w, f, cancel); err != nil {
		return "", &generator.IOError{Op: "gcs upload", Path: name, Err: err}
	}

	return fmt.Sprintf("gs://%s/%s", p.bucket, name), nil
}

// Close closes the GCS client.
func (p *GCSPublisher) Close() error {
	return p.client.Close()
}

// copyOrAbort streams src into dst and commits it with Close. A failed copy
// calls abort instead of Close, so a partial upload never becomes visible.
func copyOrAbort(dst io.WriteCloser, src io.Reader, abort func()) error {
	if _, err := io.Copy(dst, src); err != nil {
		abort()
		return fmt.Errorf("copy: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
