package memstats_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aschroede/vemap/memstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	s, err := memstats.Read()
	if runtime.GOOS != "linux" {
		assert.ErrorIs(t, err, memstats.ErrUnsupported)
		return
	}
	require.NoError(t, err)
	assert.Positive(t, s.PhysTotal)
	assert.Positive(t, s.PhysProcess)
	assert.GreaterOrEqual(t, s.VirtualTotal, s.PhysTotal)
	assert.GreaterOrEqual(t, s.VirtualProcess, s.PhysProcess)
}

func TestSnapshot_Render(t *testing.T) {
	s := memstats.Snapshot{VirtualTotal: 2e9, PhysProcess: 1024}

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "Virtual Memory (bytes): 2000000000\n")
	assert.Contains(t, buf.String(), "Physical Memory Used By Process (bytes): 1024\n")

	var logs bytes.Buffer
	slog.New(slog.NewTextHandler(&logs, nil)).Info("mem", "snapshot", s)
	assert.Contains(t, logs.String(), "snapshot.phys_process=1024")
}

func TestWriteDiagnostics(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("procfs required")
	}
	dir := filepath.Join(t.TempDir(), "diag")
	paths, err := memstats.WriteDiagnostics(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, memstats.MapsCopyFile),
		filepath.Join(dir, memstats.SnapshotFile),
	}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), p)
	}
}
