package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// YTDLPExtractor backs the generic extraction path with the yt-dlp binary.
// Cancelling the attempt context kills the subprocess, so abandoned attempts
// terminate instead of leaking.
type YTDLPExtractor struct {
	socketTimeout time.Duration
	cookieFile    string
	logger        *zap.Logger
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor(socketTimeout time.Duration, cookieFile string, logger *zap.Logger) *YTDLPExtractor {
	return &YTDLPExtractor{
		socketTimeout: socketTimeout,
		cookieFile:    cookieFile,
		logger:        logger,
	}
}

// Extract downloads the media behind url according to the platform profile
// and returns the path of the produced file.
func (e *YTDLPExtractor) Extract(ctx context.Context, url string, profile domain.PlatformProfile, outputTemplate string) (string, error) {
	dl := ytdlp.New().
		Format(profile.Format).
		Output(outputTemplate).
		NoPlaylist().
		NoOverwrites().
		SocketTimeout(e.socketTimeout.Seconds()).
		MergeOutputFormat("mp4")

	for key, value := range profile.Headers {
		dl = dl.AddHeaders(fmt.Sprintf("%s:%s", key, value))
	}

	if profile.AllowCookies && e.cookieFile != "" && fileExists(e.cookieFile) {
		dl = dl.Cookies(e.cookieFile)
	}

	e.logger.Debug("Invoking extraction backend",
		zap.String("url", url),
		zap.String("format", profile.Format),
		zap.String("output", outputTemplate))

	if _, err := dl.Run(ctx, url); err != nil {
		return "", err
	}

	return locateOutput(outputTemplate)
}

// locateOutput finds the file the backend produced for an output template.
// When several files match (separate streams before merging), the most
// recently modified one is the merged result.
func locateOutput(template string) (string, error) {
	base := strings.TrimSuffix(template, ".%(ext)s")

	matches, err := filepath.Glob(base + ".*")
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("extraction produced no file for %s", base)
	}

	for _, m := range matches {
		if strings.HasSuffix(m, domain.NormalizedExtension) {
			return m, nil
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches[0], nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
