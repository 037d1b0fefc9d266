package services

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// TorrentExtension is appended to every sanitized title
const TorrentExtension = ".torrent"

// ErrEmptyFilename is returned when nothing of a title survives sanitization
var ErrEmptyFilename = errors.New("title has no usable filename characters")

// SanitizeFilename keeps ASCII letters, digits, spaces and the characters -_() of title
// and trims surrounding whitespace. The result never contains a path separator.
func SanitizeFilename(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))
	for _, r := range title {
		if isFilenameRune(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

func isFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '_', r == '-', r == '(', r == ')':
		return true
	}
	return false
}

// NewDownloadTarget derives where a torrent for title is written inside destDir
func NewDownloadTarget(sourceURL, title, destDir string) (models.DownloadTarget, error) {
	name := SanitizeFilename(title)
	if name == "" {
		return models.DownloadTarget{SourceURL: sourceURL}, ErrEmptyFilename
	}
	filename := name + TorrentExtension
	return models.DownloadTarget{
		SourceURL:         sourceURL,
		DestinationPath:   filepath.Join(destDir, filename),
		SanitizedFilename: filename,
	}, nil
}
