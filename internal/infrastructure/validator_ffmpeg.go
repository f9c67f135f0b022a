package infrastructure

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// defaultProbeTimeout caps how long the media tool may inspect one file
const defaultProbeTimeout = 5 * time.Second

// validExtensions is the accepted container set before normalization
var validExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}

// FFmpegValidator performs post-download structural validation with the
// ffmpeg binary. An invalid or oversized file is deleted and never reaches
// the caller; a missing, broken or stalled probe tool degrades to accepting
// the file (availability over strictness). Only an affirmative diagnostic —
// invalid data, or no video stream — rejects a file.
type FFmpegValidator struct {
	binary        string
	maxFileSizeMB int
	probeTimeout  time.Duration
	logger        *zap.Logger
}

// NewFFmpegValidator creates a new ffmpeg-backed validator
func NewFFmpegValidator(binary string, maxFileSizeMB int, logger *zap.Logger) *FFmpegValidator {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegValidator{
		binary:        binary,
		maxFileSizeMB: maxFileSizeMB,
		probeTimeout:  defaultProbeTimeout,
		logger:        logger,
	}
}

// Validate checks existence, container, size bound and the presence of a
// real video stream, in that order. On success it returns the final path,
// renamed to the normalized container when needed.
func (v *FFmpegValidator) Validate(ctx context.Context, path string, platform domain.Platform) (string, *domain.DownloadError) {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("File does not exist", zap.String("path", path))
		return "", domain.NewInvalidMediaError(platform)
	}

	if info.Size() == 0 {
		v.logger.Error("File is empty", zap.String("path", path))
		os.Remove(path)
		return "", domain.NewInvalidMediaError(platform)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isValidExtension(ext) {
		v.logger.Error("File has invalid extension", zap.String("path", path))
		os.Remove(path)
		return "", domain.NewInvalidMediaError(platform)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > float64(v.maxFileSizeMB) {
		v.logger.Warn("File exceeds maximum allowed size",
			zap.Float64("size_mb", sizeMB),
			zap.Int("max_mb", v.maxFileSizeMB))
		os.Remove(path)
		return "", domain.NewOversizedError(platform, sizeMB, v.maxFileSizeMB)
	}

	if !v.probe(ctx, path) {
		os.Remove(path)
		return "", domain.NewInvalidMediaError(platform)
	}

	// Normalize the container extension before handing the file back
	if ext != domain.NormalizedExtension {
		normalized := strings.TrimSuffix(path, ext) + domain.NormalizedExtension
		if err := os.Rename(path, normalized); err != nil {
			v.logger.Error("Failed to normalize container", zap.Error(err))
			os.Remove(path)
			return "", domain.NewInvalidMediaError(platform)
		}
		path = normalized
	}

	return path, nil
}

// probe asks ffmpeg whether the file holds a genuine, non-corrupt video
// stream. ffmpeg prints file info to stderr and exits non-zero without an
// output file, so only the diagnostic text matters here.
func (v *FFmpegValidator) probe(ctx context.Context, path string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, v.probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, v.binary, "-hide_banner", "-i", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	diag := stderr.String()

	if probeCtx.Err() == context.DeadlineExceeded {
		// A stalled probe says nothing about the file; accept it rather
		// than destroy a possibly good artifact.
		v.logger.Warn("Media probe timed out, accepting file", zap.String("path", path))
		return true
	}

	if diag == "" {
		// Probe tool missing or failed to run; accept the file rather than
		// block every download on tool availability.
		if err != nil {
			v.logger.Warn("Media probe unavailable, accepting file",
				zap.String("path", path),
				zap.Error(err))
		}
		return true
	}

	if strings.Contains(diag, "Invalid data found") || strings.Contains(diag, "Error") {
		v.logger.Error("Probe reports invalid video data", zap.String("path", path))
		return false
	}

	if !strings.Contains(diag, "Video:") {
		v.logger.Error("No video stream found in file", zap.String("path", path))
		return false
	}

	return true
}

// isValidExtension checks the container extension against the accepted set
func isValidExtension(ext string) bool {
	for _, valid := range validExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// ResolveFFmpeg locates a runnable ffmpeg binary, checking PATH first and
// then common install locations.
func ResolveFFmpeg(binary string) (string, bool) {
	if binary == "" {
		binary = "ffmpeg"
	}
	if path, err := exec.LookPath(binary); err == nil {
		return path, true
	}

	for _, candidate := range []string{
		"/usr/local/bin/ffmpeg",
		"/opt/homebrew/bin/ffmpeg",
		"/usr/bin/ffmpeg",
	} {
		if fileExists(candidate) {
			return candidate, true
		}
	}

	return binary, false
}
