package client

import (
	"net/http/httptest"
	"testing"

	"github.com/Belphemur/TorrentGrabber/internal/config"
)

// newTestConfig points the link prefixes at the test server
func newTestConfig(server *httptest.Server) *config.Config {
	return &config.Config{
		ListingURL:       server.URL + "/browse-movies",
		OutputDir:        "movies",
		MovieURLPrefix:   server.URL + "/movies/",
		TorrentURLPrefix: server.URL + "/torrent/download/",
		Resolution:       "1080p",
		ClientTimeout:    "10s",
	}
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) Client {
	t.Helper()
	c, err := NewClient(newTestConfig(server), opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}
