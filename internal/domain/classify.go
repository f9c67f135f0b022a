package domain

import (
	"regexp"
	"strings"
)

// minMatchLen rejects matched spans too short to be a plausible URL,
// guarding against partial matches inside prose.
const minMatchLen = 10

// platformPattern binds a platform to its URL shape. Patterns are applied
// in order; the first match wins.
type platformPattern struct {
	platform Platform
	re       *regexp.Regexp
	// shortID platforms have a canonical ID in the first capture group.
	// All others use the full matched URL as the identifier.
	shortID bool
}

var platformPatterns = []platformPattern{
	{
		platform: PlatformYouTube,
		re:       regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:\byoutube\.com/(?:shorts/|watch\?v=)|\byoutu\.be/)([\w-]{11})`),
		shortID:  true,
	},
	{
		platform: PlatformTikTok,
		re:       regexp.MustCompile(`(?:https?://)?(?:www\.|vt\.|vm\.)?\btiktok\.com/(?:@[\w.-]+/video/|@[\w.-]+/|v/)?([\w.-]+)`),
	},
	{
		platform: PlatformInstagram,
		re:       regexp.MustCompile(`(?:https?://)?(?:www\.)?\binstagram\.com/(?:reel|p|reels|stories)/([\w-]+)`),
	},
	{
		// Anchored to the vk.com host with an explicit media path token so
		// unrelated domains with similar path segments never match.
		platform: PlatformVK,
		re:       regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?\bvk\.com/(?:feed\?[^\s]*?[zw]=)?(?:clip|video|wall)(-?\d+(?:_\d+)?)`),
	},
}

// Classify maps free text to a classified video request. It applies the
// ordered platform patterns and returns the first plausible match. It is a
// pure function over arbitrary input; unsupported text returns false.
func Classify(text string) (*VideoRequest, bool) {
	if text == "" {
		return nil, false
	}

	// Quick reject for text that cannot contain a link
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "http") && !strings.Contains(lower, "www") {
		return nil, false
	}

	for _, p := range platformPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m[0]) <= minMatchLen {
			continue
		}

		url := absoluteURL(m[0])
		if p.shortID {
			return NewVideoRequest(url, p.platform, m[1]), true
		}
		return NewVideoRequest(url, p.platform, url), true
	}

	return nil, false
}

// ContainsVideoLink reports whether text contains any supported video link
func ContainsVideoLink(text string) bool {
	_, ok := Classify(text)
	return ok
}

// absoluteURL resolves a matched span to absolute form
func absoluteURL(match string) string {
	if strings.HasPrefix(match, "http://") || strings.HasPrefix(match, "https://") {
		return match
	}
	return "https://" + match
}
