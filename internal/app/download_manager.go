package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// Notifier receives download lifecycle events for the front-end
type Notifier interface {
	NotifyDownloadStarted(url string, platform domain.Platform)
	NotifyDownloadCompleted(url string, platform domain.Platform)
	NotifyDownloadFailed(url string, platform domain.Platform, derr *domain.DownloadError)
}

// DownloadManager accepts raw message text, classifies it, journals the
// request, and dispatches resolution through the engine.
type DownloadManager struct {
	repo     domain.DownloadRepository
	resolver domain.Resolver
	notifier Notifier
	logger   *zap.Logger

	// Per-platform semaphores (limit=1 each): platforms download in
	// parallel with each other, attempts within one platform serialize.
	platformSems map[domain.Platform]chan struct{}
	mu           sync.Mutex
	wg           sync.WaitGroup
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	repo domain.DownloadRepository,
	resolver domain.Resolver,
	notifier Notifier,
	logger *zap.Logger,
) *DownloadManager {
	return &DownloadManager{
		repo:         repo,
		resolver:     resolver,
		notifier:     notifier,
		logger:       logger,
		platformSems: make(map[domain.Platform]chan struct{}),
	}
}

// Submit classifies raw message text and journals a new download. Text that
// matches no known platform is not an error condition for the system, but it
// is reported to the caller so the front-end can ignore it.
func (dm *DownloadManager) Submit(text string) (*domain.Download, *domain.VideoRequest, error) {
	req, ok := domain.Classify(text)
	if !ok {
		return nil, nil, fmt.Errorf("no supported video link found")
	}

	download := domain.NewDownload(req)
	if err := dm.repo.Create(download); err != nil {
		return nil, nil, fmt.Errorf("failed to create download record: %w", err)
	}

	dm.logger.Info("Download accepted",
		zap.String("id", download.ID),
		zap.String("url", req.URL),
		zap.String("platform", string(req.Platform)))

	return download, req, nil
}

// Dispatch resolves a download in the background
func (dm *DownloadManager) Dispatch(ctx context.Context, download *domain.Download, req *domain.VideoRequest) {
	dm.wg.Add(1)
	go func() {
		defer dm.wg.Done()
		if err := dm.Process(ctx, download, req); err != nil {
			dm.logger.Error("Failed to process download",
				zap.String("id", download.ID),
				zap.Error(err))
		}
	}()
}

// Process resolves one download to completion and records the outcome
func (dm *DownloadManager) Process(ctx context.Context, download *domain.Download, req *domain.VideoRequest) error {
	sem := dm.semaphoreFor(download.Platform)

	select {
	case sem <- struct{}{}:
		defer func() { <-sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	dm.logger.Info("Processing download",
		zap.String("id", download.ID),
		zap.String("url", download.URL),
		zap.String("platform", string(download.Platform)))

	download.MarkProcessing()
	if err := dm.repo.Update(download); err != nil {
		return fmt.Errorf("failed to update download status: %w", err)
	}

	if dm.notifier != nil {
		dm.notifier.NotifyDownloadStarted(download.URL, download.Platform)
	}

	artifact, derr := dm.resolver.Resolve(ctx, req)
	if derr != nil {
		download.MarkFailed(derr)
		if err := dm.repo.Update(download); err != nil {
			dm.logger.Error("Failed to update download status", zap.Error(err))
		}

		dm.logger.Error("Download failed",
			zap.String("id", download.ID),
			zap.String("url", download.URL),
			zap.String("kind", string(derr.Kind)),
			zap.String("message", derr.Message))

		if dm.notifier != nil {
			dm.notifier.NotifyDownloadFailed(download.URL, download.Platform, derr)
		}
		return derr
	}

	download.MarkCompleted(artifact)
	if err := dm.repo.Update(download); err != nil {
		dm.logger.Error("Failed to update download status", zap.Error(err))
	}

	dm.logger.Info("Download completed",
		zap.String("id", download.ID),
		zap.String("url", download.URL),
		zap.String("file", artifact.Path),
		zap.Int64("size_bytes", artifact.SizeBytes))

	if dm.notifier != nil {
		dm.notifier.NotifyDownloadCompleted(download.URL, download.Platform)
	}
	return nil
}

// ConsumeArtifact removes a completed download's artifact from disk once the
// front-end has taken delivery, and clears the journaled file path. Artifacts
// live in the temp directory only until consumed.
func (dm *DownloadManager) ConsumeArtifact(id string) (*domain.Download, error) {
	download, err := dm.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("download not found: %w", err)
	}
	if download == nil || download.FilePath == "" {
		return nil, fmt.Errorf("no artifact to consume for download %s", id)
	}

	if err := os.Remove(download.FilePath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove artifact: %w", err)
	}

	dm.logger.Info("Artifact consumed",
		zap.String("id", download.ID),
		zap.String("file", download.FilePath))

	download.FilePath = ""
	if err := dm.repo.Update(download); err != nil {
		return nil, fmt.Errorf("failed to update download record: %w", err)
	}
	return download, nil
}

// Wait blocks until all dispatched downloads have finished
func (dm *DownloadManager) Wait() {
	dm.wg.Wait()
}

// semaphoreFor returns the single-slot semaphore for a platform
func (dm *DownloadManager) semaphoreFor(platform domain.Platform) chan struct{} {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	sem, ok := dm.platformSems[platform]
	if !ok {
		sem = make(chan struct{}, 1)
		dm.platformSems[platform] = sem
	}
	return sem
}
