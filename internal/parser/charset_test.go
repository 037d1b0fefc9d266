package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// TestNewUTF8Reader_AlreadyUTF8 tests that UTF-8 content passes through unchanged
func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := []byte("<html><head><meta charset=\"utf-8\"></head><body>Amélie ☺</body></html>")
	reader, err := NewUTF8Reader(bytes.NewReader(input), "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}

	if !bytes.Equal(output, input) {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", output)
	}
}

// TestNewUTF8Reader_Windows1252Title tests that a legacy encoded title is decoded before parsing
func TestNewUTF8Reader_Windows1252Title(t *testing.T) {
	t.Parallel()
	// é = 0xE9 in windows-1252
	input := []byte(`<html><head><meta charset="windows-1252"></head><body><h1 class="title">Am` + string([]byte{0xE9}) + `lie</h1></body></html>`)

	reader, err := NewUTF8Reader(bytes.NewReader(input), "")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	details, err := NewDetailParser(torrentPrefix, models.Resolution1080p).ParseHtml(reader)
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if details.Title != "Amélie" {
		t.Errorf("Expected decoded title 'Amélie', got %q", details.Title)
	}
}

// TestNewUTF8Reader_ContentTypeWins tests that the header charset is honoured
func TestNewUTF8Reader_ContentTypeWins(t *testing.T) {
	t.Parallel()
	input := "<html><body>Caf" + string([]byte{0xE9}) + "</body></html>"

	reader, err := NewUTF8Reader(strings.NewReader(input), "text/html; charset=ISO-8859-1")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}
	if !strings.Contains(string(output), "Café") {
		t.Errorf("Expected 'Café' in output, got %q", output)
	}
}
