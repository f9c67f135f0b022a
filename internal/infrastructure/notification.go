package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"clipfetch/internal/domain"
)

// NotificationService handles sending desktop notifications for download
// lifecycle events.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// Send sends a notification using the configured method
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	switch n.config.Method {
	case "osascript":
		return n.sendOSAScript(title, message)
	case "notify-send":
		return n.sendNotifySend(title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}
}

// sendOSAScript sends notification using macOS osascript
func (n *NotificationService) sendOSAScript(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	cmd := exec.Command("osascript", "-e", script)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "osascript"),
			zap.Error(err))
		return err
	}

	return nil
}

// sendNotifySend sends notification using Linux notify-send
func (n *NotificationService) sendNotifySend(title, message string) error {
	cmd := exec.Command("notify-send", title, message)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "notify-send"),
			zap.Error(err))
		return err
	}

	return nil
}

// NotifyDownloadStarted sends notification when extraction starts
func (n *NotificationService) NotifyDownloadStarted(url string, platform domain.Platform) {
	n.Send("Download Started", fmt.Sprintf("Processing: %s (%s)", truncateString(url, 30), platform))
}

// NotifyDownloadCompleted sends notification when a validated artifact lands
func (n *NotificationService) NotifyDownloadCompleted(url string, platform domain.Platform) {
	n.Send("Download Completed", fmt.Sprintf("Success: %s (%s)", truncateString(url, 30), platform))
}

// NotifyDownloadFailed sends notification with the classified failure kind
func (n *NotificationService) NotifyDownloadFailed(url string, platform domain.Platform, derr *domain.DownloadError) {
	n.Send("Download Failed", fmt.Sprintf("%s: %s (%s)", derr.Kind, truncateString(url, 30), platform))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
