package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipfetch/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteDownloadRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteDownloadRepository(dbPath)
	require.NoError(t, err)
	return repo
}

func newTestDownload(url string, platform domain.Platform) *domain.Download {
	return domain.NewDownload(domain.NewVideoRequest(url, platform, url))
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	repo := setupTestRepo(t)

	dl := newTestDownload("https://youtu.be/dQw4w9WgXcQ", domain.PlatformYouTube)
	require.NoError(t, repo.Create(dl))

	found, err := repo.FindByID(dl.ID)
	require.NoError(t, err)
	assert.Equal(t, dl.ID, found.ID)
	assert.Equal(t, dl.URL, found.URL)
	assert.Equal(t, domain.StatusQueued, found.Status)
}

func TestRepository_Update(t *testing.T) {
	repo := setupTestRepo(t)

	dl := newTestDownload("https://youtu.be/dQw4w9WgXcQ", domain.PlatformYouTube)
	require.NoError(t, repo.Create(dl))

	dl.MarkFailed(domain.NewTimeoutError(domain.PlatformYouTube, 180))
	require.NoError(t, repo.Update(dl))

	found, err := repo.FindByID(dl.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, found.Status)
	assert.Equal(t, domain.KindTimeout, found.ErrorKind)
	assert.NotEmpty(t, found.ErrorMessage)
}

func TestRepository_FindAllWithFilters(t *testing.T) {
	repo := setupTestRepo(t)

	yt := newTestDownload("https://youtu.be/dQw4w9WgXcQ", domain.PlatformYouTube)
	require.NoError(t, repo.Create(yt))

	ig := newTestDownload("https://www.instagram.com/reel/ABC123", domain.PlatformInstagram)
	ig.MarkProcessing()
	require.NoError(t, repo.Create(ig))

	all, err := repo.FindAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	queued, err := repo.FindAll(map[string]interface{}{"status": domain.StatusQueued})
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, yt.ID, queued[0].ID)

	instagram, err := repo.FindAll(map[string]interface{}{"platform": domain.PlatformInstagram})
	require.NoError(t, err)
	require.Len(t, instagram, 1)
	assert.Equal(t, ig.ID, instagram[0].ID)
}

func TestRepository_Count(t *testing.T) {
	repo := setupTestRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Create(newTestDownload("https://youtu.be/a", domain.PlatformYouTube)))
	require.NoError(t, repo.Create(newTestDownload("https://youtu.be/b", domain.PlatformYouTube)))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepository_GetStats(t *testing.T) {
	repo := setupTestRepo(t)

	queued := newTestDownload("https://youtu.be/a", domain.PlatformYouTube)
	require.NoError(t, repo.Create(queued))

	completed := newTestDownload("https://youtu.be/b", domain.PlatformYouTube)
	completed.MarkCompleted(&domain.MediaArtifact{Path: "/downloads/b.mp4", SizeBytes: 10})
	require.NoError(t, repo.Create(completed))

	failed := newTestDownload("https://youtu.be/c", domain.PlatformYouTube)
	failed.MarkFailed(domain.NewInvalidMediaError(domain.PlatformYouTube))
	require.NoError(t, repo.Create(failed))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Queued)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(0), stats.Processing)
}
