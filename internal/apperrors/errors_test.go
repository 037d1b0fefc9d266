// Package apperrors tests verify the typed errors (ErrTransport, ErrParse,
// ErrFilesystem), their Error() messages, Is() matching through fmt.Errorf
// wrapping, Unwrap() and the KindOf classifier.
package apperrors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrTransport
// ---------------------------------------------------------------------------

func TestErrTransport_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrTransport
		expected string
	}{
		{
			name:     "status code",
			err:      NewStatusError("fetch page", "https://yts.mx/browse-movies", 503),
			expected: "fetch page https://yts.mx/browse-movies: unexpected status code 503",
		},
		{
			name:     "wrapped cause",
			err:      NewTransportError("download", "https://yts.mx/torrent/download/ABC", io.ErrUnexpectedEOF),
			expected: "download https://yts.mx/torrent/download/ABC: unexpected EOF",
		},
		{
			name:     "no cause",
			err:      &ErrTransport{Op: "fetch details", URL: "https://yts.mx/movies/foo"},
			expected: "fetch details https://yts.mx/movies/foo failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrTransport_IsAndUnwrap(t *testing.T) {
	t.Parallel()
	cause := io.ErrUnexpectedEOF
	err := fmt.Errorf("stream body: %w", NewTransportError("download", "u", cause))

	if !errors.Is(err, &ErrTransport{}) {
		t.Error("expected errors.Is to match *ErrTransport through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
	if errors.Is(err, &ErrParse{}) {
		t.Error("transport error should not match *ErrParse")
	}

	var target *ErrTransport
	if !errors.As(err, &target) || target.URL != "u" {
		t.Errorf("expected errors.As to extract the transport error, got %+v", target)
	}
}

// ---------------------------------------------------------------------------
// ErrParse
// ---------------------------------------------------------------------------

func TestErrParse_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrParse
		expected string
	}{
		{"what only", NewParseError("listing page", "", nil), "failed to parse listing page"},
		{"with url", NewParseError("detail page", "https://yts.mx/movies/foo", nil), "failed to parse detail page from https://yts.mx/movies/foo"},
		{"with cause", NewParseError("url", "::", errors.New("missing scheme")), "failed to parse url from ::: missing scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ErrFilesystem
// ---------------------------------------------------------------------------

func TestErrFilesystem_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()
	err := NewFilesystemError("create file", "/tmp/x.torrent", os.ErrPermission)

	if got, want := err.Error(), "create file /tmp/x.torrent: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is to reach os.ErrPermission")
	}
}

// ---------------------------------------------------------------------------
// KindOf
// ---------------------------------------------------------------------------

func TestKindOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"transport", NewStatusError("fetch", "u", 404), KindTransport},
		{"wrapped transport", fmt.Errorf("ctx: %w", NewTransportError("fetch", "u", io.EOF)), KindTransport},
		{"parse", NewParseError("detail page", "u", nil), KindParse},
		{"filesystem", fmt.Errorf("save: %w", NewFilesystemError("write", "p", io.ErrShortWrite)), KindFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
