package domain

import "fmt"

// Strategy names referenced by platform profiles
const (
	StrategyScrape = "scrape" // platform-specific direct scraper
	StrategyYTDLP  = "ytdlp"  // generic extraction library
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// PlatformProfile is the static per-platform extraction policy. Profiles are
// built once at startup and read-only thereafter.
type PlatformProfile struct {
	Platform     Platform
	Format       string            // format-selection expression, always mp4-first
	Headers      map[string]string // browser-like headers, empty when not needed
	AllowCookies bool              // browser-cookie reuse, disabled for anti-automation platforms
	Strategies   []string          // ordered fallback chain
}

// ProfileRegistry holds the per-platform extraction profiles
type ProfileRegistry struct {
	profiles map[Platform]PlatformProfile
	fallback PlatformProfile
}

// NewProfileRegistry builds the profile table with format selection capped
// at the given maximum resolution.
func NewProfileRegistry(maxHeight int) *ProfileRegistry {
	profiles := map[Platform]PlatformProfile{
		PlatformYouTube: {
			Platform: PlatformYouTube,
			Format: fmt.Sprintf(
				"best[ext=mp4][height<=%d]/bestvideo[ext=mp4][height<=%d]+bestaudio[ext=m4a]/best[height<=%d]",
				maxHeight, maxHeight, maxHeight),
			AllowCookies: true,
			Strategies:   []string{StrategyYTDLP},
		},
		PlatformTikTok: {
			Platform:     PlatformTikTok,
			Format:       "best[ext=mp4]/best",
			Headers:      browserHeaders("https://www.tiktok.com/"),
			AllowCookies: false,
			Strategies:   []string{StrategyYTDLP},
		},
		PlatformInstagram: {
			Platform:     PlatformInstagram,
			Format:       "best[ext=mp4]/best",
			Headers:      browserHeaders("https://www.instagram.com/"),
			AllowCookies: false,
			Strategies:   []string{StrategyScrape, StrategyYTDLP},
		},
		PlatformVK: {
			Platform:     PlatformVK,
			Format:       "best[ext=mp4]/best",
			Headers:      browserHeaders("https://vk.com/"),
			AllowCookies: false,
			Strategies:   []string{StrategyYTDLP},
		},
	}

	return &ProfileRegistry{
		profiles: profiles,
		fallback: PlatformProfile{
			Format:       "best[ext=mp4]/best",
			AllowCookies: true,
			Strategies:   []string{StrategyYTDLP},
		},
	}
}

// ProfileFor returns the extraction profile for a platform. Unknown
// platforms receive a permissive default.
func (r *ProfileRegistry) ProfileFor(platform Platform) PlatformProfile {
	if p, ok := r.profiles[platform]; ok {
		return p
	}
	p := r.fallback
	p.Platform = platform
	return p
}

// browserHeaders returns the header set used to mimic a browser client
func browserHeaders(referer string) map[string]string {
	return map[string]string{
		"User-Agent":      browserUserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         referer,
	}
}
