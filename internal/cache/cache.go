package cache

import (
	"github.com/Belphemur/TorrentGrabber/internal/models"

	"github.com/rs/zerolog"
)

// DetailCache stores resolved movie details keyed by movie link so a detail
// page does not have to be fetched again while the entry is alive.
// Implementations may be in-memory or backed by Redis/Valkey to survive restarts.
type DetailCache interface {
	// Get returns the cached details for link and true, or the zero value and false.
	Get(link models.MovieLink) (models.MovieDetails, bool)

	// Set stores details for link, replacing any previous entry.
	Set(link models.MovieLink, details models.MovieDetails)

	// Len returns the number of live entries.
	Len() int

	// Close releases any resources held by the cache. No-op for in-memory caches.
	Close() error
}

// Logger receives errors from cache backends that cannot return them to the caller.
type Logger interface {
	Error(msg string, err error)
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog logger to the cache Logger interface.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{logger: l}
}

func (z zerologLogger) Error(msg string, err error) {
	z.logger.Error().Err(err).Msg(msg)
}
