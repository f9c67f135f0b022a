package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateOutput_PrefersNormalizedContainer(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "scratch-abc")
	require.NoError(t, os.WriteFile(base+".webm", []byte("x"), 0644))
	require.NoError(t, os.WriteFile(base+".mp4", []byte("x"), 0644))

	path, err := locateOutput(base + ".%(ext)s")
	require.NoError(t, err)
	assert.Equal(t, base+".mp4", path)
}

func TestLocateOutput_FallsBackToNewest(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "scratch-abc")

	older := base + ".f137.webm"
	newer := base + ".mkv"
	require.NoError(t, os.WriteFile(older, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	path, err := locateOutput(base + ".%(ext)s")
	require.NoError(t, err)
	assert.Equal(t, newer, path)
}

func TestLocateOutput_NoFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scratch-missing")
	_, err := locateOutput(base + ".%(ext)s")
	assert.Error(t, err)
}
