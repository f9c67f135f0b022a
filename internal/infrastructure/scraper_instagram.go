package infrastructure

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

const (
	pageTimeout  = 10 * time.Second
	mediaTimeout = 30 * time.Second
)

var (
	videoURLPattern       = regexp.MustCompile(`"video_url":"([^"]+)"`)
	sharedDataPattern     = regexp.MustCompile(`window\._sharedData\s*=\s*(.+?);`)
	additionalDataPattern = regexp.MustCompile(`window\.__additionalDataLoaded\('[^']+',\s*(.+?)\);`)
	queryStringPattern    = regexp.MustCompile(`\?.*$`)
)

// InstagramScraper extracts Instagram videos by scraping the post page
// directly, without cookies or the generic extraction library.
type InstagramScraper struct {
	client     *http.Client
	headers    map[string]string
	oembedBase string
	logger     *zap.Logger
}

// NewInstagramScraper creates a new Instagram direct scraper
func NewInstagramScraper(logger *zap.Logger) *InstagramScraper {
	return &InstagramScraper{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
				ForceAttemptHTTP2: true,
			},
		},
		headers: map[string]string{
			"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		},
		oembedBase: "https://api.instagram.com/oembed/?url=",
		logger:     logger,
	}
}

// Platform returns the platform this scraper handles
func (s *InstagramScraper) Platform() domain.Platform {
	return domain.PlatformInstagram
}

// ExtractMediaURL resolves an Instagram post URL to a direct video URL.
// Strategies in order: oEmbed endpoint (weak signal only), a video_url field
// embedded in the page, the _sharedData JSON payload, and the
// __additionalDataLoaded JSON payload. The first resolved URL wins.
func (s *InstagramScraper) ExtractMediaURL(ctx context.Context, url string) (string, error) {
	url = cleanInstagramURL(url)
	s.logger.Info("Extracting video from Instagram URL", zap.String("url", url))

	// The oEmbed endpoint never yields a direct media URL, but a media_id in
	// the response confirms the post exists before scraping.
	if body, err := s.get(ctx, pageTimeout, s.oembedBase+url); err == nil {
		var payload struct {
			MediaID string `json:"media_id"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.MediaID != "" {
			s.logger.Debug("Found media ID via oEmbed", zap.String("media_id", payload.MediaID))
		}
	}

	body, err := s.get(ctx, pageTimeout, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch Instagram page: %w", err)
	}
	html := string(body)

	if m := videoURLPattern.FindStringSubmatch(html); m != nil {
		videoURL := strings.ReplaceAll(m[1], `\u0026`, "&")
		s.logger.Info("Found video URL in page", zap.String("video_url", videoURL))
		return videoURL, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse Instagram page: %w", err)
	}

	var videoURL string
	var notVideo bool
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()

		if m := sharedDataPattern.FindStringSubmatch(text); m != nil {
			if u, isVideo := videoURLFromSharedData([]byte(m[1])); u != "" {
				videoURL = u
				return false
			} else if !isVideo {
				notVideo = true
			}
		}

		if m := additionalDataPattern.FindStringSubmatch(text); m != nil {
			if u, isVideo := videoURLFromAdditionalData([]byte(m[1])); u != "" {
				videoURL = u
				return false
			} else if !isVideo {
				notVideo = true
			}
		}

		return true
	})

	if videoURL != "" {
		s.logger.Info("Found video URL in embedded data", zap.String("video_url", videoURL))
		return videoURL, nil
	}
	if notVideo {
		return "", fmt.Errorf("instagram post at %s is not a video", url)
	}
	return "", fmt.Errorf("failed to extract video URL from %s", url)
}

// Download resolves the post and streams the media to dest
func (s *InstagramScraper) Download(ctx context.Context, url, dest string) error {
	videoURL, err := s.ExtractMediaURL(ctx, url)
	if err != nil {
		return err
	}

	s.logger.Info("Downloading Instagram video",
		zap.String("video_url", videoURL),
		zap.String("dest", dest))

	return fetchToFile(ctx, s.client, s.headers, videoURL, dest, mediaTimeout)
}

// get performs a GET with browser-like headers; any non-2xx response is an
// immediate failure with no retry.
func (s *InstagramScraper) get(ctx context.Context, timeout time.Duration, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http error %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// igGraphql is the media node shared by both embedded payload shapes
type igGraphql struct {
	ShortcodeMedia struct {
		IsVideo  bool   `json:"is_video"`
		VideoURL string `json:"video_url"`
	} `json:"shortcode_media"`
}

// videoURLFromSharedData walks the window._sharedData payload. The second
// return is false when the payload parsed but the post is not a video.
func videoURLFromSharedData(data []byte) (string, bool) {
	var payload struct {
		EntryData struct {
			PostPage []struct {
				Graphql igGraphql `json:"graphql"`
			} `json:"PostPage"`
		} `json:"entry_data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", true
	}
	if len(payload.EntryData.PostPage) == 0 {
		return "", true
	}
	media := payload.EntryData.PostPage[0].Graphql.ShortcodeMedia
	if !media.IsVideo {
		return "", false
	}
	return media.VideoURL, true
}

// videoURLFromAdditionalData walks the window.__additionalDataLoaded payload
func videoURLFromAdditionalData(data []byte) (string, bool) {
	var payload struct {
		Graphql igGraphql `json:"graphql"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", true
	}
	if payload.Graphql.ShortcodeMedia.VideoURL == "" && !payload.Graphql.ShortcodeMedia.IsVideo {
		return "", false
	}
	return payload.Graphql.ShortcodeMedia.VideoURL, true
}

// cleanInstagramURL strips query parameters and ensures a trailing slash
func cleanInstagramURL(url string) string {
	url = queryStringPattern.ReplaceAllString(url, "")
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}
