package domain

import (
	"fmt"
	"strings"
)

// ErrorKind is the stable failure taxonomy surfaced to callers
type ErrorKind string

const (
	KindUnavailable       ErrorKind = "unavailable"
	KindGeoRestricted     ErrorKind = "geo_restricted"
	KindToolMisconfigured ErrorKind = "tool_misconfigured"
	KindNetworkError      ErrorKind = "network_error"
	KindUnsupportedURL    ErrorKind = "unsupported_url"
	KindAgeRestricted     ErrorKind = "age_restricted"
	KindPrivateContent    ErrorKind = "private_content"
	KindAuthRequired      ErrorKind = "auth_required"
	KindAccessDenied      ErrorKind = "access_denied"
	KindOversized         ErrorKind = "oversized"
	KindInvalidMedia      ErrorKind = "invalid_media"
	KindTimeout           ErrorKind = "timeout"
	KindUnknown           ErrorKind = "unknown"
)

// DownloadError is a classified, user-facing failure. It is terminal for the
// request that produced it; raw backend error text never reaches callers
// unmodified.
type DownloadError struct {
	Kind     ErrorKind
	Platform Platform
	Message  string
}

func (e *DownloadError) Error() string {
	return e.Message
}

// NewDownloadError creates a classified failure
func NewDownloadError(kind ErrorKind, platform Platform, message string) *DownloadError {
	return &DownloadError{Kind: kind, Platform: platform, Message: message}
}

// errorPattern maps raw failure substrings to a taxonomy kind. The table is
// ordered; the first matching row wins.
type errorPattern struct {
	substrings []string
	kind       ErrorKind
	message    string
}

var errorPatterns = []errorPattern{
	{[]string{"video unavailable"}, KindUnavailable,
		"This video is no longer available or is private."},
	{[]string{"not available in your country"}, KindGeoRestricted,
		"This video is geo-restricted and not available in this region."},
	{[]string{"ffmpeg is not installed"}, KindToolMisconfigured,
		"FFmpeg is not properly installed. Please install FFmpeg and restart."},
	{[]string{"unable to download webpage", "http error"}, KindNetworkError,
		"Network error while downloading. Please try again later."},
	{[]string{"unsupported url"}, KindUnsupportedURL,
		"This URL is not supported. Please try a direct link to the video."},
	{[]string{"sign in to confirm your age", "age-restricted"}, KindAgeRestricted,
		"This video is age-restricted and cannot be downloaded."},
	{[]string{"private video"}, KindPrivateContent,
		"This video is private and cannot be downloaded."},
	{[]string{"login required", "requires authentication"}, KindAuthRequired,
		"This content requires login and cannot be downloaded."},
	{[]string{"could not copy chrome cookie database"}, KindAccessDenied,
		"Could not access browser cookies. Try using a different link format."},
}

// Translate maps a raw backend failure into the stable error taxonomy using
// case-insensitive substring matching over the ordered pattern table.
// Unmatched text yields KindUnknown with the original message preserved.
func Translate(err error, platform Platform) *DownloadError {
	if err == nil {
		return nil
	}

	// Already classified errors pass through unchanged
	if derr, ok := err.(*DownloadError); ok {
		return derr
	}

	raw := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		for _, sub := range p.substrings {
			if strings.Contains(raw, sub) {
				return &DownloadError{
					Kind:     p.kind,
					Platform: platform,
					Message:  qualifyMessage(p.kind, platform, p.message),
				}
			}
		}
	}

	return &DownloadError{
		Kind:     KindUnknown,
		Platform: platform,
		Message:  fmt.Sprintf("Failed to download video: %s", err.Error()),
	}
}

// qualifyMessage platform-qualifies the kinds whose wording differs by site
func qualifyMessage(kind ErrorKind, platform Platform, fallback string) string {
	switch kind {
	case KindAuthRequired:
		switch platform {
		case PlatformInstagram:
			return "This Instagram content requires login. Try using a public Instagram video."
		case PlatformTikTok:
			return "This TikTok content requires login. Try using a public TikTok video."
		}
	case KindAccessDenied:
		switch platform {
		case PlatformInstagram:
			return "Could not access Instagram content. Try using a different Instagram link format."
		case PlatformTikTok:
			return "Could not access TikTok content. Try using a different TikTok link format."
		}
	}
	return fallback
}

// NewOversizedError creates the distinct oversized failure
func NewOversizedError(platform Platform, sizeMB float64, maxMB int) *DownloadError {
	return &DownloadError{
		Kind:     KindOversized,
		Platform: platform,
		Message:  fmt.Sprintf("Video is too large (%.2fMB). Maximum allowed size is %dMB.", sizeMB, maxMB),
	}
}

// NewTimeoutError creates the fatal timeout failure
func NewTimeoutError(platform Platform, budgetSeconds int) *DownloadError {
	return &DownloadError{
		Kind:     KindTimeout,
		Platform: platform,
		Message:  fmt.Sprintf("Download timed out after %d seconds. Try again later or try a different video.", budgetSeconds),
	}
}

// NewInvalidMediaError creates the structural validation failure
func NewInvalidMediaError(platform Platform) *DownloadError {
	return &DownloadError{
		Kind:     KindInvalidMedia,
		Platform: platform,
		Message:  "The downloaded file is not a valid video. Please try a different video.",
	}
}
