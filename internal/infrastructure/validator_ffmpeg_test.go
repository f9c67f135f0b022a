package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// missingBinary is a probe binary name that cannot exist on PATH, forcing
// the validator into its degraded accept-without-probe mode.
const missingBinary = "clipfetch-missing-probe-binary"

func writeTestFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

// fakeProbe builds a stand-in probe binary that prints fixed diagnostics to
// stderr and exits non-zero, the way ffmpeg does when invoked without an
// output file.
func fakeProbe(t *testing.T, dir, diag string) string {
	t.Helper()
	script := filepath.Join(dir, "fake-ffmpeg")
	content := "#!/bin/sh\ncat <<'DIAG' 1>&2\n" + diag + "\nDIAG\nexit 1\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))
	return script
}

func TestValidate_MissingFile(t *testing.T) {
	v := NewFFmpegValidator(missingBinary, 50, zap.NewNop())

	_, derr := v.Validate(context.Background(), "/nonexistent/video.mp4", domain.PlatformYouTube)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindInvalidMedia, derr.Kind)
}

func TestValidate_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "empty.mp4", 0)
	v := NewFFmpegValidator(missingBinary, 50, zap.NewNop())

	_, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindInvalidMedia, derr.Kind)
	assert.NoFileExists(t, path)
}

func TestValidate_BadExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "notvideo.txt", 128)
	v := NewFFmpegValidator(missingBinary, 50, zap.NewNop())

	_, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindInvalidMedia, derr.Kind)
	assert.NoFileExists(t, path)
}

func TestValidate_Oversized(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "huge.mp4", 2*1024*1024)
	v := NewFFmpegValidator(missingBinary, 1, zap.NewNop())

	_, derr := v.Validate(context.Background(), path, domain.PlatformTikTok)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindOversized, derr.Kind)
	assert.Contains(t, derr.Message, "2.00MB")
	assert.NoFileExists(t, path)
}

func TestValidate_ProbeUnavailableDegrades(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.mp4", 128)
	v := NewFFmpegValidator(missingBinary, 50, zap.NewNop())

	final, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.Nil(t, derr)
	assert.Equal(t, path, final)
	assert.FileExists(t, final)
}

func TestValidate_ProbeTimeoutDegrades(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.mp4", 128)

	script := filepath.Join(dir, "slow-ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 1\n"), 0755))

	v := NewFFmpegValidator(script, 50, zap.NewNop())
	v.probeTimeout = 50 * time.Millisecond

	// A stalled probe tool must not destroy the artifact
	final, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.Nil(t, derr)
	assert.Equal(t, path, final)
	assert.FileExists(t, final)
}

func TestValidate_NormalizesExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.webm", 128)
	v := NewFFmpegValidator(missingBinary, 50, zap.NewNop())

	final, derr := v.Validate(context.Background(), path, domain.PlatformVK)
	require.Nil(t, derr)
	assert.True(t, strings.HasSuffix(final, ".mp4"))
	assert.FileExists(t, final)
	assert.NoFileExists(t, path)
}

func TestValidate_ProbeAcceptsVideoStream(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.mp4", 128)
	probe := fakeProbe(t, dir, "Input #0, mov,mp4, from 'video.mp4':\n  Stream #0:0: Video: h264 (High), yuv420p, 1280x720")
	v := NewFFmpegValidator(probe, 50, zap.NewNop())

	final, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.Nil(t, derr)
	assert.Equal(t, path, final)
}

func TestValidate_ProbeRejectsInvalidData(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.mp4", 128)
	probe := fakeProbe(t, dir, "video.mp4: Invalid data found when processing input")
	v := NewFFmpegValidator(probe, 50, zap.NewNop())

	_, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindInvalidMedia, derr.Kind)
	assert.NoFileExists(t, path)
}

func TestValidate_ProbeRejectsAudioOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "video.mp4", 128)
	probe := fakeProbe(t, dir, "Input #0, mp3, from 'video.mp4':\n  Stream #0:0: Audio: mp3, 44100 Hz, stereo")
	v := NewFFmpegValidator(probe, 50, zap.NewNop())

	_, derr := v.Validate(context.Background(), path, domain.PlatformYouTube)
	require.NotNil(t, derr)
	assert.Equal(t, domain.KindInvalidMedia, derr.Kind)
	assert.NoFileExists(t, path)
}

func TestResolveFFmpeg(t *testing.T) {
	path, _ := ResolveFFmpeg("")
	assert.NotEmpty(t, path)
}

func TestIsValidExtension(t *testing.T) {
	for _, ext := range []string{".mp4", ".mov", ".avi", ".mkv", ".webm"} {
		assert.True(t, isValidExtension(ext), ext)
	}
	assert.False(t, isValidExtension(".txt"))
	assert.False(t, isValidExtension(".mp3"))
}
