// Package tabular writes generated tables as comma-delimited files.
package tabular

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkg.jsn.cam/tablegen/internal/generator"
)

// FileInfo describes a table file after it has been committed to disk.
type FileInfo struct {
	Path   string
	Rows   int
	Bytes  int64
	SHA256 string
}

// Write encodes the header followed by every row of t.
func Write(w io.Writer, t generator.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Serialize writes t to path. The data goes to a temp file in the same
// directory which is renamed over path only after a successful sync, so a
// failed write never leaves a partial file behind. All failures are *generator.IOError.
func Serialize(t generator.Table, path string) (*FileInfo, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &generator.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, &generator.IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	h := sha256.New()
	cw := &countingWriter{w: io.MultiWriter(tmp, h)}
	if err := Write(cw, t); err != nil {
		return nil, &generator.IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return nil, &generator.IOError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		return nil, &generator.IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &generator.IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		committed = true
		return nil, &generator.IOError{Op: "rename", Path: path, Err: err}
	}
	committed = true

	return &FileInfo{
		Path:   path,
		Rows:   t.Len(),
		Bytes:  cw.n,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
