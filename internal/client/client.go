package client

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/cache"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/models"
	"github.com/Belphemur/TorrentGrabber/internal/parser"
	"github.com/Belphemur/TorrentGrabber/internal/transport"
)

// Client defines the interface for querying the movie listing website
type Client interface {
	// Pages lazily fetches listing pages 1, 2, 3, ... of baseURL. A page is only
	// requested when the consumer asks for it; breaking out of the loop stops the crawl.
	Pages(ctx context.Context, baseURL string) iter.Seq2[models.PageBatch, error]

	// FetchListingPage fetches one listing page and extracts its movie links.
	FetchListingPage(ctx context.Context, baseURL string, page int) (models.PageBatch, error)

	// ResolveDetails fetches a movie page and returns its title and preferred
	// download link, inferring the title from the URL when the page lacks one.
	ResolveDetails(ctx context.Context, link models.MovieLink) (models.MovieDetails, error)

	// HTTPClient exposes the configured HTTP client so downloads share its transport.
	HTTPClient() *http.Client

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	timeout       time.Duration
	listingParser parser.Parser[models.MovieLink]
	detailParser  parser.SingleResultParser[models.MovieDetails]
	detailCache   cache.DetailCache
}

// Option customises a client built by NewClient
type Option func(*client)

// WithDetailCache makes ResolveDetails consult and fill c
func WithDetailCache(c cache.DetailCache) Option {
	return func(cl *client) {
		cl.detailCache = c
	}
}

// WithHTTPClient replaces the HTTP client assembled from the configuration
func WithHTTPClient(h *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = h
	}
}

// NewClient creates a new client instance from the configuration
func NewClient(cfg *config.Config, opts ...Option) (Client, error) {
	resolution := models.ParseResolution(cfg.Resolution)
	if resolution == models.ResolutionUnknown {
		return nil, fmt.Errorf("unsupported resolution %q", cfg.Resolution)
	}

	c := &client{
		timeout:       cfg.Timeout(),
		listingParser: parser.NewListingParser(cfg.MovieURLPrefix),
		detailParser:  parser.NewDetailParser(cfg.TorrentURLPrefix, resolution),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		httpClient, err := transport.NewHTTPClient(cfg.ProxyConnectionString)
		if err != nil {
			return nil, err
		}
		c.httpClient = httpClient
	}

	return c, nil
}

func (c *client) HTTPClient() *http.Client {
	return c.httpClient
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.detailCache == nil {
		return nil
	}
	return c.detailCache.Close()
}
