package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/tablegen/internal/config"
	"pkg.jsn.cam/tablegen/internal/generator"
	"pkg.jsn.cam/tablegen/internal/manifest"
)

func parseArgs(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("tablegen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return opts.loadConfig(fs)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := parseArgs(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FlagDefaultsMatchConfig(t *testing.T) {
	fs := flag.NewFlagSet("tablegen", flag.ContinueOnError)
	registerFlags(fs)
	def := config.Default()

	assert.Equal(t, "100", fs.Lookup("customers").DefValue)
	assert.Equal(t, "50", fs.Lookup("products").DefValue)
	assert.Equal(t, "500", fs.Lookup("orders").DefValue)
	assert.Equal(t, "42", fs.Lookup("seed").DefValue)
	assert.Equal(t, def.OutputDir, fs.Lookup("output").DefValue)
}

func TestLoadConfig_Layering(t *testing.T) {
	path := writeConfig(t, `
customer_count: 10
product_count: 20
seed: 7
output_dir: from-file
`)

	cfg, err := parseArgs(t, "-config", path, "-products", "5", "-output", "from-flag")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.CustomerCount, "file overrides default")
	assert.Equal(t, 5, cfg.ProductCount, "flag overrides file")
	assert.Equal(t, 500, cfg.OrderCount, "default survives when neither sets it")
	assert.Equal(t, uint64(7), cfg.Seed, "unset flag does not clobber file value")
	assert.Equal(t, "from-flag", cfg.OutputDir)
}

func TestLoadConfig_BucketFollowsFinalKind(t *testing.T) {
	dirConfig := writeConfig(t, "publish:\n  kind: dir\n  dir: /mnt/share\n")
	s3Config := writeConfig(t, "publish:\n  kind: s3\n  bucket: file-bucket\n")

	tests := []struct {
		name       string
		args       []string
		wantKind   string
		wantBucket string
		wantDir    string
	}{
		{"flag kind s3 over file kind dir", []string{"-config", dirConfig, "-publish", "s3", "-bucket", "raw"}, "s3", "raw", "/mnt/share"},
		{"flag kind dir over file kind s3", []string{"-config", s3Config, "-publish", "dir", "-bucket", "/tmp/out"}, "dir", "file-bucket", "/tmp/out"},
		{"file kind dir, bucket flag only", []string{"-config", dirConfig, "-bucket", "/srv/raw"}, "dir", "", "/srv/raw"},
		{"file kind s3, bucket flag only", []string{"-config", s3Config, "-bucket", "other"}, "s3", "other", ""},
		{"no file", []string{"-publish", "gcs", "-bucket", "raw", "-prefix", "sales/"}, "gcs", "raw", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseArgs(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, cfg.Publish.Kind)
			assert.Equal(t, tt.wantBucket, cfg.Publish.Bucket)
			assert.Equal(t, tt.wantDir, cfg.Publish.Dir)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := parseArgs(t, "-orders", "0")
	assert.ErrorIs(t, err, generator.ErrValidation)

	_, err = parseArgs(t, "-publish", "s3")
	assert.ErrorIs(t, err, generator.ErrValidation)

	_, err = parseArgs(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestListTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listTables(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "customers "))
	assert.True(t, strings.HasPrefix(lines[1], "products "))
	assert.True(t, strings.HasPrefix(lines[2], "orders "))
}

func TestInspectRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")
	ref := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	store, err := manifest.OpenBoltStore(path)
	require.NoError(t, err)
	run := manifest.NewRun(42, ref, ref)
	run.Files = []manifest.File{
		{Table: "customers", Path: "out/customers_full.csv", Rows: 100, SHA256: "0123456789abcdef0123"},
		{Table: "orders", Path: "out/orders_2025-03-14.csv", Rows: 500, SHA256: "fedcba9876543210fedc", Remote: "s3://raw/orders_2025-03-14.csv"},
	}
	require.NoError(t, store.Save(run))
	require.NoError(t, store.Close())

	var list bytes.Buffer
	require.NoError(t, inspectRuns(&list, path, ""))
	assert.Equal(t,
		run.ID+" seed=42 reference=2025-03-14 09:26:53 customers=0123456789ab orders=fedcba987654\n",
		list.String())

	var detail bytes.Buffer
	require.NoError(t, inspectRuns(&detail, path, run.ID))
	assert.Contains(t, detail.String(), "run       "+run.ID)
	assert.Contains(t, detail.String(), "-> s3://raw/orders_2025-03-14.csv")

	assert.ErrorIs(t, inspectRuns(io.Discard, path, "missing"), manifest.ErrRunNotFound)
	assert.ErrorIs(t, inspectRuns(io.Discard, "", ""), errNoManifest)
}
