package domain

import "time"

// Platform represents the source platform for downloads
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformVK        Platform = "vk"
)

// RequestState tracks a request through the resolution pipeline
type RequestState string

const (
	StateCreated    RequestState = "created"
	StateClassified RequestState = "classified"
	StateExtracting RequestState = "extracting"
	StateExtracted  RequestState = "extracted"
	StateValidating RequestState = "validating"
	StateDone       RequestState = "done"
	StateTimeout    RequestState = "timeout"
	StateFailed     RequestState = "failed"
)

// VideoRequest represents one inbound link to resolve into a local media file.
// Identifier is either a short canonical ID (YouTube) or the full matched URL
// for platforms without a reliably extractable ID.
type VideoRequest struct {
	URL        string
	Platform   Platform
	Identifier string
	State      RequestState
	CreatedAt  time.Time
}

// NewVideoRequest creates a classified video request
func NewVideoRequest(url string, platform Platform, identifier string) *VideoRequest {
	return &VideoRequest{
		URL:        url,
		Platform:   platform,
		Identifier: identifier,
		State:      StateClassified,
		CreatedAt:  time.Now(),
	}
}

// ValidatePlatform checks if a platform is valid
func ValidatePlatform(platform Platform) bool {
	switch platform {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformVK:
		return true
	default:
		return false
	}
}
