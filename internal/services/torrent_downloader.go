package services

import (
	"context"

	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// TorrentDownloader defines the interface for saving torrent files to disk
type TorrentDownloader interface {
	// Download saves sourceURL as <sanitized title>.torrent inside destDir.
	// An existing destination file is reported as DownloadStatusExisting without any network access.
	Download(ctx context.Context, sourceURL, title, destDir string) (*models.DownloadResult, error)
}
