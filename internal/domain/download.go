package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadStatus represents the current status of a download record
type DownloadStatus string

const (
	StatusQueued     DownloadStatus = "queued"
	StatusProcessing DownloadStatus = "processing"
	StatusCompleted  DownloadStatus = "completed"
	StatusFailed     DownloadStatus = "failed"
)

// Download is the persisted journal entry for one resolved request
type Download struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	URL          string         `json:"url" gorm:"not null"`
	Platform     Platform       `json:"platform" gorm:"not null;index"`
	Identifier   string         `json:"identifier,omitempty"`
	Status       DownloadStatus `json:"status" gorm:"not null;index"`
	ErrorKind    ErrorKind      `json:"error_kind,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	FilePath     string         `json:"file_path,omitempty"`
	FileSize     int64          `json:"file_size,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// NewDownload creates a new download journal entry
func NewDownload(req *VideoRequest) *Download {
	return &Download{
		ID:         uuid.New().String(),
		URL:        req.URL,
		Platform:   req.Platform,
		Identifier: req.Identifier,
		Status:     StatusQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// MarkProcessing marks the download as processing
func (d *Download) MarkProcessing() {
	d.Status = StatusProcessing
	now := time.Now()
	d.StartedAt = &now
	d.UpdatedAt = now
}

// MarkCompleted marks the download as completed with its artifact
func (d *Download) MarkCompleted(artifact *MediaArtifact) {
	d.Status = StatusCompleted
	d.FilePath = artifact.Path
	d.FileSize = artifact.SizeBytes
	now := time.Now()
	d.CompletedAt = &now
	d.UpdatedAt = now
}

// MarkFailed marks the download as failed with a classified error
func (d *Download) MarkFailed(derr *DownloadError) {
	d.Status = StatusFailed
	d.ErrorKind = derr.Kind
	d.ErrorMessage = derr.Message
	d.UpdatedAt = time.Now()
}

// IsTerminal checks if the download is in a terminal state
func (d *Download) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusFailed
}

// IsProcessing checks if the download is currently processing
func (d *Download) IsProcessing() bool {
	return d.Status == StatusProcessing
}
