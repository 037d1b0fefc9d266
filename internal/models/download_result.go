package models

// DownloadStatus describes how a download attempt ended
type DownloadStatus int

const (
	DownloadStatusFailed DownloadStatus = iota
	DownloadStatusDownloaded
	DownloadStatusExisting // destination already present, nothing fetched
)

// String returns the label used in logs and metrics
func (s DownloadStatus) String() string {
	switch s {
	case DownloadStatusDownloaded:
		return "downloaded"
	case DownloadStatusExisting:
		return "existing"
	default:
		return "failed"
	}
}

// DownloadResult represents the outcome of a torrent download
type DownloadResult struct {
	Target       DownloadTarget
	Status       DownloadStatus
	BytesWritten int64
	ContentType  string
}
