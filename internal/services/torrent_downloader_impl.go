package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/metrics"
	"github.com/Belphemur/TorrentGrabber/internal/models"
	"github.com/Belphemur/TorrentGrabber/internal/transport"
)

// chunkSize is the read size used while streaming a download to disk
const chunkSize = 4096

// DefaultTorrentDownloader streams torrent files to disk
type DefaultTorrentDownloader struct {
	httpClient *http.Client
	timeout    time.Duration
	progress   ProgressReporter
}

// NewTorrentDownloader creates a downloader. Each download, body included, is bounded by timeout.
// A nil progress reporter disables progress output.
func NewTorrentDownloader(httpClient *http.Client, timeout time.Duration, progress ProgressReporter) TorrentDownloader {
	if progress == nil {
		progress = NopReporter{}
	}
	return &DefaultTorrentDownloader{
		httpClient: httpClient,
		timeout:    timeout,
		progress:   progress,
	}
}

// Download fetches sourceURL into destDir/<sanitized title>.torrent.
// A partially written file is left in place when the transfer fails.
func (d *DefaultTorrentDownloader) Download(ctx context.Context, sourceURL, title, destDir string) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	target, err := NewDownloadTarget(sourceURL, title, destDir)
	if err != nil {
		metrics.TorrentDownloadsTotal.WithLabelValues(models.DownloadStatusFailed.String()).Inc()
		return &models.DownloadResult{Target: target, Status: models.DownloadStatusFailed}, err
	}
	result := &models.DownloadResult{Target: target}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		metrics.TorrentDownloadsTotal.WithLabelValues(models.DownloadStatusFailed.String()).Inc()
		return result, apperrors.NewFilesystemError("create directory", destDir, err)
	}

	if _, err := os.Stat(target.DestinationPath); err == nil {
		logger.Info().Str("file", target.SanitizedFilename).Msg("Torrent already exists, skipping download")
		result.Status = models.DownloadStatusExisting
		metrics.TorrentDownloadsTotal.WithLabelValues(result.Status.String()).Inc()
		return result, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		metrics.TorrentDownloadsTotal.WithLabelValues(models.DownloadStatusFailed.String()).Inc()
		return result, apperrors.NewFilesystemError("stat", target.DestinationPath, err)
	}

	logger.Info().
		Str("url", sourceURL).
		Str("file", target.SanitizedFilename).
		Msg("Downloading torrent")

	transfer, err := transport.Do(ctx, d.timeout, func(ctx context.Context) (streamed, error) {
		return d.stream(ctx, target)
	})
	result.BytesWritten = transfer.bytes
	result.ContentType = transfer.contentType
	if err != nil {
		if transport.IsTimeout(err) {
			err = apperrors.NewTransportError("download torrent", sourceURL, err)
		}
		result.Status = models.DownloadStatusFailed
		metrics.TorrentDownloadsTotal.WithLabelValues(result.Status.String()).Inc()
		return result, err
	}

	result.Status = models.DownloadStatusDownloaded
	metrics.TorrentDownloadsTotal.WithLabelValues(result.Status.String()).Inc()
	logger.Info().
		Str("file", target.SanitizedFilename).
		Int64("bytes", result.BytesWritten).
		Msg("Torrent downloaded")

	return result, nil
}

// streamed is what a transfer wrote before it ended
type streamed struct {
	bytes       int64
	contentType string
}

// stream performs the GET and copies the body to the destination in fixed size chunks
func (d *DefaultTorrentDownloader) stream(ctx context.Context, target models.DownloadTarget) (streamed, error) {
	var out streamed

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.SourceURL, nil)
	if err != nil {
		return out, apperrors.NewParseError("download url", target.SourceURL, err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return out, apperrors.NewTransportError("download torrent", target.SourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, apperrors.NewStatusError("download torrent", target.SourceURL, resp.StatusCode)
	}
	out.contentType = resp.Header.Get("Content-Type")

	file, err := os.Create(target.DestinationPath)
	if err != nil {
		return out, apperrors.NewFilesystemError("create file", target.DestinationPath, err)
	}
	defer file.Close()

	total := resp.ContentLength
	reporting := total > 0
	if reporting {
		d.progress.Start(target.SanitizedFilename, total)
		defer d.progress.Finish()
	}

	buf := make([]byte, chunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := file.Write(buf[:n]); err != nil {
				return out, apperrors.NewFilesystemError("write file", target.DestinationPath, err)
			}
			out.bytes += int64(n)
			metrics.DownloadedBytesTotal.Add(float64(n))
			if reporting {
				d.progress.Advance(out.bytes, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return out, apperrors.NewTransportError("download torrent", target.SourceURL, readErr)
		}
	}

	if err := file.Close(); err != nil {
		return out, apperrors.NewFilesystemError("close file", target.DestinationPath, err)
	}
	return out, nil
}
