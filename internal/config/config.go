// Package config loads the run configuration for tablegen.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/tablegen/internal/clock"
	"pkg.jsn.cam/tablegen/internal/generator"
)

// Publish targets
const (
	PublishNone = ""
	PublishDir  = "dir"
	PublishS3   = "s3"
	PublishGCS  = "gcs"
)

// Config is the full set of knobs for one generation run.
type Config struct {
	CustomerCount int    `yaml:"customer_count"`
	ProductCount  int    `yaml:"product_count"`
	OrderCount    int    `yaml:"order_count"`
	Seed          uint64 `yaml:"seed"`
	OutputDir     string `yaml:"output_dir"`
	// ReferenceTime pins "now" for date columns and the orders file name. Empty means the wall clock.
	ReferenceTime string        `yaml:"reference_time,omitempty"`
	ManifestPath  string        `yaml:"manifest_path,omitempty"` // empty = no manifest
	LogMode       string        `yaml:"log_mode,omitempty"`
	Publish       PublishConfig `yaml:"publish"`
}

// PublishConfig selects where finished files are uploaded, if anywhere.
type PublishConfig struct {
	Kind     string `yaml:"kind"` // "" | "dir" | "s3" | "gcs"
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"` // custom S3 endpoint (MinIO, LocalStack)
	Dir      string `yaml:"dir,omitempty"`
}

// Default returns the stock 100 customers / 50 products / 500 orders run.
func Default() *Config {
	return &Config{
		CustomerCount: 100,
		ProductCount:  50,
		OrderCount:    500,
		Seed:          42,
		OutputDir:     "sample_data",
		LogMode:       "dev",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first bad field as a *generator.ValidationError.
func (c *Config) Validate() error {
	if err := c.Params(time.Time{}).Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return &generator.ValidationError{Field: "output_dir", Reason: "must not be empty"}
	}
	if c.ReferenceTime != "" {
		if _, err := parseReference(c.ReferenceTime); err != nil {
			return &generator.ValidationError{Field: "reference_time", Reason: err.Error()}
		}
	}

	switch c.Publish.Kind {
	case PublishNone:
	case PublishDir:
		if c.Publish.Dir == "" {
			return &generator.ValidationError{Field: "publish.dir", Reason: "required for dir publishing"}
		}
	case PublishS3, PublishGCS:
		if c.Publish.Bucket == "" {
			return &generator.ValidationError{Field: "publish.bucket", Reason: "required for " + c.Publish.Kind + " publishing"}
		}
	default:
		return &generator.ValidationError{Field: "publish.kind", Reason: fmt.Sprintf("unknown target %q", c.Publish.Kind)}
	}
	return nil
}

// Params converts the config into generator parameters at the given reference time.
func (c *Config) Params(ref time.Time) generator.Params {
	return generator.Params{
		CustomerCount: c.CustomerCount,
		ProductCount:  c.ProductCount,
		OrderCount:    c.OrderCount,
		Seed:          c.Seed,
		Reference:     ref,
	}
}

// Reference resolves the run's reference time: the configured value if set,
// otherwise clk.Now(). Timestamps are written at second precision, so the
// result is truncated to the second.
func (c *Config) Reference(clk clock.Clock) (time.Time, error) {
	if c.ReferenceTime == "" {
		return clk.Now().Truncate(time.Second), nil
	}
	ref, err := parseReference(c.ReferenceTime)
	if err != nil {
		return time.Time{}, &generator.ValidationError{Field: "reference_time", Reason: err.Error()}
	}
	return ref.Truncate(time.Second), nil
}

var referenceLayouts = []string{
	time.RFC3339,
	generator.TimestampLayout,
	"2006-01-02",
}

func parseReference(s string) (time.Time, error) {
	for _, layout := range referenceLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as RFC3339, %q or a date", s, generator.TimestampLayout)
}
