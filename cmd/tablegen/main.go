package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/tablegen/internal/batch"
	"pkg.jsn.cam/tablegen/internal/config"
	"pkg.jsn.cam/tablegen/internal/generator"
	"pkg.jsn.cam/tablegen/internal/logger"
	"pkg.jsn.cam/tablegen/internal/manifest"
	"pkg.jsn.cam/tablegen/internal/publish"
)

/*generates customers, products and orders CSV tables from a fixed seed*/

// options holds the command-line flags. Only flags set explicitly override the config file.
type options struct {
	ConfigPath    *string
	CustomerCount *int
	ProductCount  *int
	OrderCount    *int
	Seed          *uint64
	OutputDir     *string
	Reference     *string
	ManifestPath  *string
	PublishKind   *string
	Bucket        *string
	Prefix        *string
	Progress      *bool
	ListTables    *bool
	ListRuns      *bool
	ShowRun       *string
}

func registerFlags(fs *flag.FlagSet) *options {
	def := config.Default()
	return &options{
		ConfigPath:    fs.String("config", "", "YAML config file (defaults apply when empty)"),
		CustomerCount: fs.Int("customers", def.CustomerCount, "Number of customers"),
		ProductCount:  fs.Int("products", def.ProductCount, "Number of products"),
		OrderCount:    fs.Int("orders", def.OrderCount, "Number of orders"),
		Seed:          fs.Uint64("seed", def.Seed, "Random seed"),
		OutputDir:     fs.String("output", def.OutputDir, "Output directory"),
		Reference:     fs.String("reference", "", "Reference time, e.g. 2025-03-14 or 2025-03-14 09:00:00 (default now)"),
		ManifestPath:  fs.String("manifest", "", "bbolt file to record runs in"),
		PublishKind:   fs.String("publish", "", "Upload target: dir, s3 or gcs"),
		Bucket:        fs.String("bucket", "", "Bucket (s3/gcs) or directory (dir) to publish into"),
		Prefix:        fs.String("prefix", "", "Object name prefix for published files"),
		Progress:      fs.Bool("progress", false, "Show a progress bar"),
		ListTables:    fs.Bool("list", false, "List the tables and exit"),
		ListRuns:      fs.Bool("runs", false, "List the runs recorded in the manifest and exit"),
		ShowRun:       fs.String("run", "", "Show the files of one recorded run and exit"),
	}
}

func main() {
	opts := registerFlags(flag.CommandLine)
	flag.Parse()

	if *opts.ListTables {
		if err := listTables(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := opts.loadConfig(flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *opts.ListRuns || *opts.ShowRun != "" {
		if err := inspectRuns(os.Stdout, cfg.ManifestPath, *opts.ShowRun); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log, *opts.Progress); err != nil {
		log.Error("generation failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, progress bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []batch.Option{batch.WithLogger(log)}

	if cfg.ManifestPath != "" {
		store, err := manifest.OpenBoltStore(cfg.ManifestPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, batch.WithStore(store))
	}

	pub, err := publish.New(ctx, cfg.Publish)
	if err != nil {
		return err
	}
	if pub != nil {
		defer pub.Close()
		opts = append(opts, batch.WithPublisher(pub))
	}

	if progress {
		total := cfg.CustomerCount + cfg.ProductCount + cfg.OrderCount
		opts = append(opts, batch.WithObserver(newProgressObserver(total)))
	}

	result, err := batch.NewRunner(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	var total int64
	for _, f := range result.Files {
		total += f.Bytes
	}
	fmt.Printf("Run %s: wrote %d files (%s) to %s\n", result.ID, len(result.Files), humanize.Bytes(uint64(total)), cfg.OutputDir)
	if cfg.Publish.Kind == config.PublishNone {
		fmt.Println("Next: upload the files to object storage (-publish s3|gcs|dir)")
	}
	return nil
}

// loadConfig layers defaults, then the config file, then flags set on fs.
func (o *options) loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if *o.ConfigPath != "" {
		loaded, err := config.Load(*o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	bucketSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "customers":
			cfg.CustomerCount = *o.CustomerCount
		case "products":
			cfg.ProductCount = *o.ProductCount
		case "orders":
			cfg.OrderCount = *o.OrderCount
		case "seed":
			cfg.Seed = *o.Seed
		case "output":
			cfg.OutputDir = *o.OutputDir
		case "reference":
			cfg.ReferenceTime = *o.Reference
		case "manifest":
			cfg.ManifestPath = *o.ManifestPath
		case "publish":
			cfg.Publish.Kind = *o.PublishKind
		case "bucket":
			bucketSet = true
		case "prefix":
			cfg.Publish.Prefix = *o.Prefix
		}
	})

	// Visit runs in lexical order, so -bucket is placed only once the final kind is known
	if bucketSet {
		if cfg.Publish.Kind == config.PublishDir {
			cfg.Publish.Dir = *o.Bucket
		} else {
			cfg.Publish.Bucket = *o.Bucket
		}
	}

	return cfg, cfg.Validate()
}

func listTables(w io.Writer) error {
	for _, name := range generator.List() {
		spec, err := generator.Get(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", spec.Name, spec.Description); err != nil {
			return err
		}
	}
	return nil
}
