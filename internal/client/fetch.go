package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/parser"
	"github.com/Belphemur/TorrentGrabber/internal/transport"
)

// page is a fetched HTML document already converted to UTF-8
type page struct {
	body     []byte
	finalURL string // URL after redirects
}

// fetchPage performs a bounded HTTP GET and returns the whole body.
func (c *client) fetchPage(ctx context.Context, op, url string) (*page, error) {
	fetched, err := transport.Do(ctx, c.timeout, func(ctx context.Context) (*page, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, apperrors.NewParseError("url", url, err)
		}
		req.Header.Set("User-Agent", config.GetUserAgent())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.NewTransportError(op, url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, apperrors.NewStatusError(op, url, resp.StatusCode)
		}

		reader, err := parser.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			return nil, apperrors.NewParseError("charset", url, err)
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return nil, apperrors.NewTransportError(op, url, fmt.Errorf("read body: %w", err))
		}

		return &page{body: body, finalURL: resp.Request.URL.String()}, nil
	})
	if transport.IsTimeout(err) {
		return nil, apperrors.NewTransportError(op, url, err)
	}
	return fetched, err
}
