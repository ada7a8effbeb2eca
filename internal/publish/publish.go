// Package publish uploads finished table files to object storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkg.jsn.cam/tablegen/internal/config"
	"pkg.jsn.cam/tablegen/internal/generator"
)

// Publisher copies a local file to a remote location.
type Publisher interface {
	// Publish uploads localPath as objectName and returns where it landed.
	Publish(ctx context.Context, localPath, objectName string) (string, error)
	Close() error
}

// New builds the publisher selected by cfg. It returns nil, nil when
// publishing is disabled.
func New(ctx context.Context, cfg config.PublishConfig) (Publisher, error) {
	switch cfg.Kind {
	case config.PublishNone:
		return nil, nil
	case config.PublishDir:
		p, err := NewDirPublisher(cfg.Dir, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PublishS3:
		p, err := NewS3Publisher(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PublishGCS:
		p, err := NewGCSPublisher(ctx, GCSConfig{Bucket: cfg.Bucket, Prefix: cfg.Prefix})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &generator.ValidationError{Field: "publish.kind", Reason: fmt.Sprintf("unknown target %q", cfg.Kind)}
	}
}

// DirPublisher copies files into a local directory, e.g. a mounted share.
type DirPublisher struct {
	dir    string
	prefix string
}

// NewDirPublisher creates dir if needed.
func NewDirPublisher(dir, prefix string) (*DirPublisher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &generator.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return &DirPublisher{dir: dir, prefix: prefix}, nil
}

func (p *DirPublisher) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := filepath.Join(p.dir, filepath.FromSlash(p.prefix+objectName))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", &generator.IOError{Op: "mkdir", Path: filepath.Dir(dest), Err: err}
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", &generator.IOError{Op: "open", Path: localPath, Err: err}
	}
	defer src.Close()

	// Write to temp, then rename
	tmpPath := dest + ".tmp"
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", &generator.IOError{Op: "create", Path: tmpPath, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmpPath)
		return "", &generator.IOError{Op: "copy", Path: dest, Err: err}
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", &generator.IOError{Op: "close", Path: dest, Err: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return "", &generator.IOError{Op: "rename", Path: dest, Err: err}
	}

	return dest, nil
}

// Close is a no-op for directories
func (p *DirPublisher) Close() error {
	return nil
}
