package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

// NormalizedExtension is the mandated output container for all artifacts
const NormalizedExtension = ".mp4"

// MediaArtifact is a downloaded, validated file on local storage
type MediaArtifact struct {
	Path      string
	SizeBytes int64
	Platform  Platform
}

// SizeMB returns the artifact size in megabytes
func (a *MediaArtifact) SizeMB() float64 {
	return float64(a.SizeBytes) / (1024 * 1024)
}

// ShortIdentifier derives a stable filename-safe identifier. Platforms
// without a short canonical ID use the full URL as identifier; those are
// hashed so repeated requests map to the same filename and distinct URLs
// never collide in practice.
func ShortIdentifier(platform Platform, identifier string) string {
	if platform == PlatformYouTube {
		return identifier
	}
	sum := md5.Sum([]byte(identifier))
	return hex.EncodeToString(sum[:])[:15]
}

// ArtifactPath returns the final artifact path for a request within the
// temp directory: {platform}_{identifier-or-hash}.mp4
func ArtifactPath(tempDir string, platform Platform, identifier string) string {
	name := fmt.Sprintf("%s_%s%s", platform, ShortIdentifier(platform, identifier), NormalizedExtension)
	return filepath.Join(tempDir, name)
}
