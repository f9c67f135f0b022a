package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 50, config.Download.MaxFileSizeMB)
	assert.Equal(t, 720, config.Download.TargetQuality)
	assert.Equal(t, 180*time.Second, config.Download.Budget)
	assert.Equal(t, 30*time.Second, config.Download.SocketTimeout)
	assert.Equal(t, "ffmpeg", config.Download.FFmpegBinary)
	assert.Equal(t, "info", config.Logging.Level)

	// $HOME defaults must come back expanded
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".clipfetch", "downloads"), config.Download.TempDir)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
download:
  temp_dir: /var/tmp/clipfetch
  max_file_size_mb: 100
  target_quality: 1080
  budget: 60s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/var/tmp/clipfetch", config.Download.TempDir)
	assert.Equal(t, 100, config.Download.MaxFileSizeMB)
	assert.Equal(t, 1080, config.Download.TargetQuality)
	assert.Equal(t, 60*time.Second, config.Download.Budget)
	// Untouched sections keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"zero file size", "download:\n  max_file_size_mb: 0\n"},
		{"negative budget", "download:\n  budget: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "videos"), expandPath("~/videos"))
	assert.Equal(t, home+"/videos", expandPath("$HOME/videos"))
	assert.Equal(t, "/absolute/path", expandPath("/absolute/path"))
}
