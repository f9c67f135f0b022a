package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// Engine is the fallback coordinator: it drives the bounded executor across
// a platform's candidate strategies, validates the result, and translates
// failures into the stable error taxonomy.
type Engine struct {
	profiles  *domain.ProfileRegistry
	extractor domain.Extractor
	scrapers  map[domain.Platform]domain.DirectScraper
	validator domain.Validator
	config    *domain.DownloadConfig
	logger    *zap.Logger
}

// NewEngine creates a new download orchestration engine
func NewEngine(
	profiles *domain.ProfileRegistry,
	extractor domain.Extractor,
	scrapers map[domain.Platform]domain.DirectScraper,
	validator domain.Validator,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		profiles:  profiles,
		extractor: extractor,
		scrapers:  scrapers,
		validator: validator,
		config:    config,
		logger:    logger,
	}
}

// instagramPostPath matches post/reel-style Instagram paths so they can be
// normalized into the canonical direct-media path the extraction library
// expects.
var instagramPostPath = regexp.MustCompile(`/(reel|p)/([^/?]+)`)

// Resolve turns a classified request into a validated local artifact or a
// classified failure. Strategies run strictly sequentially; a timeout or a
// validation failure is terminal, any other failure advances the chain. When
// every strategy fails, the last attempt's translated error surfaces.
func (e *Engine) Resolve(ctx context.Context, req *domain.VideoRequest) (*domain.MediaArtifact, *domain.DownloadError) {
	profile := e.profiles.ProfileFor(req.Platform)
	req.State = domain.StateExtracting

	if err := os.MkdirAll(e.config.TempDir, 0755); err != nil {
		req.State = domain.StateFailed
		return nil, domain.Translate(fmt.Errorf("failed to create temp directory: %w", err), req.Platform)
	}

	// Scratch files are scoped to this request; whatever terminal state is
	// reached, leftovers are removed on the way out.
	var scratches []string
	defer func() {
		for _, s := range scratches {
			removeScratch(s)
		}
	}()

	var lastErr error
	for _, strategy := range profile.Strategies {
		scratch := filepath.Join(e.config.TempDir, "scratch-"+uuid.New().String())
		scratches = append(scratches, scratch)

		attempt := e.runStrategy(ctx, req, profile, strategy, scratch)

		e.logger.Info("Extraction attempt finished",
			zap.String("url", req.URL),
			zap.String("platform", string(req.Platform)),
			zap.String("strategy", attempt.Strategy),
			zap.String("outcome", string(attempt.Outcome)),
			zap.Duration("elapsed", time.Since(attempt.StartedAt)))

		switch attempt.Outcome {
		case OutcomeTimeout:
			// Fatal for the request, no further strategies are tried
			req.State = domain.StateTimeout
			return nil, domain.NewTimeoutError(req.Platform, int(e.config.Budget.Seconds()))

		case OutcomeFailure:
			e.logger.Warn("Extraction strategy failed",
				zap.String("url", req.URL),
				zap.String("strategy", attempt.Strategy),
				zap.Error(attempt.Err))
			// Partials from this attempt are gone before the next one runs
			removeScratch(scratch)
			lastErr = attempt.Err
			continue
		}

		// Success: validate before the artifact is placed
		req.State = domain.StateValidating
		path, derr := e.validator.Validate(ctx, attempt.Path, req.Platform)
		if derr != nil {
			req.State = domain.StateFailed
			return nil, derr
		}

		artifact, err := e.place(path, req)
		if err != nil {
			req.State = domain.StateFailed
			return nil, domain.Translate(err, req.Platform)
		}

		req.State = domain.StateDone
		return artifact, nil
	}

	req.State = domain.StateFailed
	if lastErr == nil {
		lastErr = fmt.Errorf("no extraction strategy available for platform %s", req.Platform)
	}
	return nil, domain.Translate(lastErr, req.Platform)
}

// runStrategy executes one named strategy under the wall-clock budget
func (e *Engine) runStrategy(ctx context.Context, req *domain.VideoRequest, profile domain.PlatformProfile, strategy, scratch string) ExtractionAttempt {
	switch strategy {
	case domain.StrategyScrape:
		scraper, ok := e.scrapers[req.Platform]
		if !ok {
			return ExtractionAttempt{
				Strategy: strategy,
				Outcome:  OutcomeFailure,
				Err:      fmt.Errorf("no direct scraper registered for platform %s", req.Platform),
			}
		}
		dest := scratch + domain.NormalizedExtension
		return runBounded(ctx, e.config.Budget, strategy, func(ctx context.Context) (string, error) {
			if err := scraper.Download(ctx, req.URL, dest); err != nil {
				return "", err
			}
			return dest, nil
		})

	case domain.StrategyYTDLP:
		url := req.URL
		if req.Platform == domain.PlatformInstagram {
			url = normalizeInstagramURL(url)
		}
		template := scratch + ".%(ext)s"
		return runBounded(ctx, e.config.Budget, strategy, func(ctx context.Context) (string, error) {
			return e.extractor.Extract(ctx, url, profile, template)
		})

	default:
		return ExtractionAttempt{
			Strategy: strategy,
			Outcome:  OutcomeFailure,
			Err:      fmt.Errorf("unknown extraction strategy: %s", strategy),
		}
	}
}

// place atomically moves a validated file into its deterministic final path.
// Writers race on the final path for identical URLs, but each writes its own
// scratch file first, so a losing writer never corrupts the winner's file.
func (e *Engine) place(path string, req *domain.VideoRequest) (*domain.MediaArtifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("validated file missing: %w", err)
	}

	final := domain.ArtifactPath(e.config.TempDir, req.Platform, req.Identifier)
	if err := os.Rename(path, final); err != nil {
		return nil, fmt.Errorf("failed to place artifact: %w", err)
	}

	return &domain.MediaArtifact{
		Path:      final,
		SizeBytes: info.Size(),
		Platform:  req.Platform,
	}, nil
}

// normalizeInstagramURL rewrites post/reel-style URLs into the canonical
// form, since the extraction library is sensitive to URL shape.
func normalizeInstagramURL(url string) string {
	if m := instagramPostPath.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf("https://www.instagram.com/%s/%s/", m[1], m[2])
	}
	return url
}

// removeScratch deletes any files produced under a scratch base name
func removeScratch(scratch string) {
	matches, err := filepath.Glob(scratch + "*")
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}
