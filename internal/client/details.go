package client

import (
	"bytes"
	"context"

	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/models"
	"github.com/Belphemur/TorrentGrabber/internal/parser"
)

// ResolveDetails fetches the detail page of link and returns its title and download link.
// When the page has no title element the title is inferred from the URL.
// Transport and parse failures are returned as errors; a missing download link is not an error.
func (c *client) ResolveDetails(ctx context.Context, link models.MovieLink) (models.MovieDetails, error) {
	logger := config.GetLogger()

	if c.detailCache != nil {
		if cached, ok := c.detailCache.Get(link); ok {
			logger.Debug().Str("url", link.String()).Msg("Using cached movie details")
			return cached, nil
		}
	}

	fetched, err := c.fetchPage(ctx, "fetch movie details", link.String())
	if err != nil {
		return models.MovieDetails{}, err
	}

	details, err := c.detailParser.ParseHtml(bytes.NewReader(fetched.body))
	if err != nil {
		return models.MovieDetails{}, err
	}

	if !details.HasTitle() {
		details.Title = parser.InferTitle(link.String())
		logger.Debug().Str("url", link.String()).Str("title", details.Title).Msg("Title element missing, inferred title from URL")
	}

	// Only complete details are cached.
	if c.detailCache != nil && details.Complete() {
		c.detailCache.Set(link, details)
	}

	return details, nil
}
