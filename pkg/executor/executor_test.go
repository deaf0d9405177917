package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := New().LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	skipWithoutShell(t)

	out, err := New().Execute(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestExecuteIncludesStderr(t *testing.T) {
	skipWithoutShell(t)

	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stderr: boom")
}

func TestExecuteInDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "marker.txt")
}

func TestExecuteCanceled(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Execute(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	got := tail(strings.Repeat("x", 10)+"end", 3)
	assert.Equal(t, "...end", got)
}
