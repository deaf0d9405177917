package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-summarizer/internal/config"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/pkg/executor"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths = config.PathsConfig{
		Outputs:      filepath.Join(root, "outputs"),
		Uploads:      filepath.Join(root, "uploads"),
		StaticImages: filepath.Join(root, "static", "images"),
		Temp:         filepath.Join(root, "tmp"),
		Inbox:        filepath.Join(root, "inbox"),
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestEnsureDirectories(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, EnsureDirectories(cfg))

	for _, dir := range []string{cfg.Paths.Outputs, cfg.Paths.Uploads, cfg.Paths.StaticImages, cfg.Paths.Temp, cfg.Paths.Inbox} {
		st, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, st.IsDir(), dir)
	}
}

func TestNewManager(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	m, closeStore, err := NewManager(ctx, cfg, executor.New(), logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.NoError(t, closeStore())

	n, err := m.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, m.Shutdown(ctx))
}

func TestNewManagerRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "mystery"

	_, _, err := NewManager(context.Background(), cfg, executor.New(), logger.NewNop())
	assert.Error(t, err)
}
