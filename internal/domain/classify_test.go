package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_YouTube(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		identifier string
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts link", "https://www.youtube.com/shorts/abc123DEF-_", "abc123DEF-_"},
		{"no scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embedded in prose", "check this out https://youtu.be/dQw4w9WgXcQ amazing", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Classify(tt.text)
			require.True(t, ok)
			assert.Equal(t, PlatformYouTube, req.Platform)
			assert.Equal(t, tt.identifier, req.Identifier)
			assert.Equal(t, StateClassified, req.State)
		})
	}
}

func TestClassify_TikTok(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"full video link", "https://www.tiktok.com/@someuser/video/7234567890123456789"},
		{"vt short link", "https://vt.tiktok.com/ZS8abcdef/"},
		{"vm short link", "https://vm.tiktok.com/ZM8abcdef/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Classify(tt.text)
			require.True(t, ok)
			assert.Equal(t, PlatformTikTok, req.Platform)
			// No reliable canonical ID: the full URL is the identifier
			assert.Equal(t, req.URL, req.Identifier)
		})
	}
}

func TestClassify_Instagram(t *testing.T) {
	tests := []struct {
		name string
		text string
		url  string
	}{
		{"reel", "https://www.instagram.com/reel/Cxyz123_ab/", "https://www.instagram.com/reel/Cxyz123_ab"},
		{"post", "https://www.instagram.com/p/Cxyz123_ab/", "https://www.instagram.com/p/Cxyz123_ab"},
		{"query params excluded", "https://www.instagram.com/reel/Cxyz123_ab/?igshid=xyz", "https://www.instagram.com/reel/Cxyz123_ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Classify(tt.text)
			require.True(t, ok)
			assert.Equal(t, PlatformInstagram, req.Platform)
			assert.Equal(t, tt.url, req.URL)
			assert.Equal(t, req.URL, req.Identifier)
		})
	}
}

func TestClassify_VK(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"video", "https://vk.com/video-123456_789012"},
		{"clip", "https://vk.com/clip-98765_4321"},
		{"wall", "https://vk.com/wall-12345_678"},
		{"mobile host", "https://m.vk.com/video-123456_789012"},
		{"feed z param", "https://vk.com/feed?z=clip-123456_789012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Classify(tt.text)
			require.True(t, ok)
			assert.Equal(t, PlatformVK, req.Platform)
			assert.Equal(t, req.URL, req.Identifier)
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain text", "hello world"},
		{"prose mentioning a platform", "I watched a youtube video yesterday"},
		{"unsupported site", "https://example.com/video/123"},
		{"lookalike vk domain", "https://notvk.com/video-123_456"},
		{"lookalike tiktok domain", "https://nottiktok.com/@user/video/123"},
		{"vk without media path", "https://vk.com/somepage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := Classify(tt.text)
			assert.False(t, ok)
			assert.Nil(t, req)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Two supported links in one message: the pattern table order decides
	text := "https://youtu.be/dQw4w9WgXcQ and https://vk.com/video-1_2345678"
	req, ok := Classify(text)
	require.True(t, ok)
	assert.Equal(t, PlatformYouTube, req.Platform)
}

func TestClassify_AbsoluteURL(t *testing.T) {
	req, ok := Classify("www.instagram.com/reel/Cxyz123_ab/")
	require.True(t, ok)
	assert.Equal(t, "https://www.instagram.com/reel/Cxyz123_ab", req.URL)
}

func TestContainsVideoLink(t *testing.T) {
	assert.True(t, ContainsVideoLink("https://youtu.be/dQw4w9WgXcQ"))
	assert.False(t, ContainsVideoLink("no links here"))
}

func TestValidatePlatform(t *testing.T) {
	assert.True(t, ValidatePlatform(PlatformYouTube))
	assert.True(t, ValidatePlatform(PlatformTikTok))
	assert.True(t, ValidatePlatform(PlatformInstagram))
	assert.True(t, ValidatePlatform(PlatformVK))
	assert.False(t, ValidatePlatform("invalid"))
}
