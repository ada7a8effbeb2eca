// Package batch runs one end-to-end generation: build the dataset, write each
// table, optionally publish it, and record the run.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/tablegen/internal/clock"
	"pkg.jsn.cam/tablegen/internal/config"
	"pkg.jsn.cam/tablegen/internal/generator"
	"pkg.jsn.cam/tablegen/internal/logger"
	"pkg.jsn.cam/tablegen/internal/manifest"
	"pkg.jsn.cam/tablegen/internal/publish"
	"pkg.jsn.cam/tablegen/internal/tabular"
)

// Observer is told about each table once its file is committed.
type Observer interface {
	TableWritten(table string, info *tabular.FileInfo)
}

// Runner holds the collaborators of a run. Store, Publisher and Observer are optional.
type Runner struct {
	cfg       *config.Config
	clock     clock.Clock
	log       *logger.Logger
	store     manifest.Store
	publisher publish.Publisher
	observer  Observer
}

// Option configures a Runner
type Option func(*Runner)

// WithClock overrides the wall clock
func WithClock(c clock.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithStore records finished runs in s
func WithStore(s manifest.Store) Option {
	return func(r *Runner) { r.store = s }
}

// WithPublisher uploads every written file through p
func WithPublisher(p publish.Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

// WithObserver reports progress to o
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// NewRunner creates a runner for cfg
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:   cfg,
		clock: clock.NewRealClock(),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs the generation. The first error aborts the run; files already
// committed stay on disk and no manifest record is written.
func (r *Runner) Run(ctx context.Context) (*manifest.Run, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	ref, err := r.cfg.Reference(r.clock)
	if err != nil {
		return nil, err
	}

	run := manifest.NewRun(r.cfg.Seed, ref, r.clock.Now())
	run.CustomerCount = r.cfg.CustomerCount
	run.ProductCount = r.cfg.ProductCount
	run.OrderCount = r.cfg.OrderCount

	log := r.log.With("run", run.ID)
	log.Info("generating sample data",
		"seed", r.cfg.Seed,
		"reference", ref.Format(generator.TimestampLayout),
		"customers", r.cfg.CustomerCount,
		"products", r.cfg.ProductCount,
		"orders", r.cfg.OrderCount,
	)

	ds, err := generator.Build(r.cfg.Params(ref))
	if err != nil {
		return nil, err
	}

	for _, spec := range generator.Registry {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := r.writeTable(ctx, log, spec, ds, ref)
		if err != nil {
			return nil, err
		}
		run.Files = append(run.Files, file)
	}

	run.FinishedAt = r.clock.Now()

	if r.store != nil {
		if err := r.store.Save(run); err != nil {
			return nil, fmt.Errorf("save manifest: %w", err)
		}
	}

	log.Info("sample data generation complete", "files", len(run.Files))
	return run, nil
}

func (r *Runner) writeTable(ctx context.Context, log *logger.Logger, spec generator.TableSpec, ds *generator.Dataset, ref time.Time) (manifest.File, error) {
	name := spec.FileName(ref)
	path := filepath.Join(r.cfg.OutputDir, name)

	info, err := tabular.Serialize(spec.Select(ds), path)
	if err != nil {
		return manifest.File{}, fmt.Errorf("write %s: %w", spec.Name, err)
	}
	log.Info("table written",
		"table", spec.Name,
		"path", info.Path,
		"rows", info.Rows,
		"size", humanize.Bytes(uint64(info.Bytes)),
	)
	if r.observer != nil {
		r.observer.TableWritten(spec.Name, info)
	}

	file := manifest.File{
		Table:  spec.Name,
		Path:   info.Path,
		Rows:   info.Rows,
		Bytes:  info.Bytes,
		SHA256: info.SHA256,
	}

	if r.publisher != nil {
		remote, err := r.publisher.Publish(ctx, path, name)
		if err != nil {
			return manifest.File{}, fmt.Errorf("publish %s: %w", spec.Name, err)
		}
		log.Info("table published", "table", spec.Name, "remote", remote)
		file.Remote = remote
	}

	return file, nil
}
