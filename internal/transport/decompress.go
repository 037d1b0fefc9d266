package transport

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, br, zstd"

// decoders maps a Content-Encoding token to a constructor for its decompressing reader.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// decompressingTransport advertises gzip, brotli and zstd support and
// transparently decodes responses using one of them.
type decompressingTransport struct {
	next http.RoundTripper
}

func newDecompressingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &decompressingTransport{next: next}
}

// RoundTrip sends req with an Accept-Encoding header and replaces the response
// body with a decoded stream when the server compressed it.
func (t *decompressingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	newDecoder, ok := decoders[outermostEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}

	decoded, err := newDecoder(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decodedBody{ReadCloser: decoded, raw: resp.Body}
	// Decoded length is unknown.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decodedBody closes both the decoder and the raw network body.
type decodedBody struct {
	io.ReadCloser
	raw io.ReadCloser
}

func (b *decodedBody) Close() error {
	decErr := b.ReadCloser.Close()
	rawErr := b.raw.Close()
	if decErr != nil {
		return decErr
	}
	return rawErr
}

// outermostEncoding returns the last coding of a Content-Encoding list, the one
// applied last by the server, lower-cased. "" means identity.
func outermostEncoding(header string) string {
	codings := strings.Split(header, ",")
	last := strings.TrimSpace(codings[len(codings)-1])
	return strings.ToLower(last)
}
