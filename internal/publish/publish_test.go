package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/tablegen/internal/config"
	"pkg.jsn.cam/tablegen/internal/generator"
)

func TestDirPublisher(t *testing.T) {
	src := filepath.Join(t.TempDir(), "orders_2025-03-14.csv")
	require.NoError(t, os.WriteFile(src, []byte("order_id\n1\n"), 0644))

	dest := t.TempDir()
	p, err := NewDirPublisher(dest, "raw/")
	require.NoError(t, err)
	defer p.Close()

	remote, err := p.Publish(context.Background(), src, "orders_2025-03-14.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "raw", "orders_2025-03-14.csv"), remote)

	data, err := os.ReadFile(remote)
	require.NoError(t, err)
	assert.Equal(t, "order_id\n1\n", string(data))

	_, err = os.Stat(remote + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone")
}

func TestDirPublisher_MissingSource(t *testing.T) {
	p, err := NewDirPublisher(t.TempDir(), "")
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "missing.csv")
	assert.ErrorIs(t, err, generator.ErrIO)
}

func TestDirPublisher_Cancelled(t *testing.T) {
	p, err := NewDirPublisher(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Publish(ctx, "ignored", "ignored")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	p, err := New(ctx, config.PublishConfig{})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(ctx, config.PublishConfig{Kind: config.PublishDir, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &DirPublisher{}, p)

	_, err = New(ctx, config.PublishConfig{Kind: "ftp"})
	assert.ErrorIs(t, err, generator.ErrValidation)
}
