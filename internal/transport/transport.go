package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/Belphemur/TorrentGrabber/internal/config"

	"golang.org/x/net/proxy"
)

// NewHTTPClient assembles the client shared by page fetches and downloads:
// DefaultTransport settings, an optional HTTP(S) or SOCKS5 proxy, and response
// decompression. Redirects are followed with the standard policy. The client
// has no overall timeout; each operation is bounded by Do instead.
func NewHTTPClient(proxyConnectionString string) (*http.Client, error) {
	// Clone DefaultTransport to preserve its dial timeouts, pooling and HTTP/2 support
	base := http.DefaultTransport.(*http.Transport).Clone()

	if proxyConnectionString != "" {
		if err := applyProxy(base, proxyConnectionString); err != nil {
			return nil, err
		}
	}

	return &http.Client{
		Transport: newDecompressingTransport(base),
	}, nil
}

func applyProxy(t *http.Transport, raw string) error {
	logger := config.GetLogger()

	proxyURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}

	switch proxyURL.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(proxyURL)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(proxyURL, proxy.Direct)
		if err != nil {
			return fmt.Errorf("create SOCKS5 dialer: %w", err)
		}
		t.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			t.DialContext = cd.DialContext
		} else {
			t.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	default:
		return fmt.Errorf("unsupported proxy scheme %q", proxyURL.Scheme)
	}

	logger.Info().Str("scheme", proxyURL.Scheme).Str("host", proxyURL.Host).Msg("Using proxy")
	return nil
}
