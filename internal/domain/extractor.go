package domain

import "context"

// Extractor is the generic extraction collaborator: given a URL and a
// profile, produce a local file or a typed failure. The engine treats it as
// an opaque capability.
type Extractor interface {
	// Extract downloads the media behind url into a file matching
	// outputTemplate and returns the path of the produced file.
	Extract(ctx context.Context, url string, profile PlatformProfile, outputTemplate string) (string, error)
}

// DirectScraper is a platform-specific extractor that bypasses the generic
// extraction library.
type DirectScraper interface {
	// Platform returns the platform this scraper handles
	Platform() Platform

	// ExtractMediaURL resolves a post URL to a direct media URL
	ExtractMediaURL(ctx context.Context, url string) (string, error)

	// Download resolves and streams the media to dest
	Download(ctx context.Context, url, dest string) error
}

// Validator performs post-download structural validation. On success it
// returns the (possibly renamed) final path; on failure the file has been
// deleted and a classified error is returned.
type Validator interface {
	Validate(ctx context.Context, path string, platform Platform) (string, *DownloadError)
}

// Resolver turns a classified request into a validated local artifact or a
// classified failure.
type Resolver interface {
	Resolve(ctx context.Context, req *VideoRequest) (*MediaArtifact, *DownloadError)
}
