// Package manifest records what each generation run produced.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by Get for an unknown run id
var ErrRunNotFound = errors.New("run not found")

// File is one table file written by a run.
type File struct {
	Table  string `json:"table"`
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
	Remote string `json:"remote,omitempty"` // object URL when published
}

// Run is the record of a single generation run.
type Run struct {
	ID            string    `json:"id"`
	Seed          uint64    `json:"seed"`
	Reference     time.Time `json:"reference"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	CustomerCount int       `json:"customer_count"`
	ProductCount  int       `json:"product_count"`
	OrderCount    int       `json:"order_count"`
	Files         []File    `json:"files"`
}

// NewRun starts a run record with a fresh id.
func NewRun(seed uint64, reference, startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Seed:      seed,
		Reference: reference,
		StartedAt: startedAt,
	}
}

// Fingerprint maps each table to the hash of its file. Two runs with equal
// fingerprints produced byte-identical output.
func (r *Run) Fingerprint() map[string]string {
	fp := make(map[string]string, len(r.Files))
	for _, f := range r.Files {
		fp[f.Table] = f.SHA256
	}
	return fp
}

// Store persists run records.
type Store interface {
	Save(run *Run) error
	Get(id string) (*Run, error)
	// List returns all runs, oldest first
	List() ([]*Run, error)
	Close() error
}

func encodeRun(run *Run) ([]byte, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run: %w", err)
	}
	return data, nil
}

func decodeRun(data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &run, nil
}

func sortRuns(runs []*Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
}
